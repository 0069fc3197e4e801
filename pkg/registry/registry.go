// Package registry models the host CLI that completion scripts are generated for:
// its bin name, cache directory, configured shell and topic separator, and the
// full plugin/topic/command/flag registry.
//
// A registry is normally built from a live cobra command tree with FromCobra,
// or read from a YAML manifest with LoadManifest.
package registry

import (
	"sort"
	"strings"
)

// Separator is the character separating path segments of a command id
// on the command line.
type Separator string

const (
	// SeparatorColon means commands are typed as `bin topic:sub:cmd`.
	SeparatorColon Separator = ":"
	// SeparatorSpace means commands are typed as `bin topic sub cmd`.
	SeparatorSpace Separator = " "
)

// FlagType is the kind of a flag.
type FlagType string

const (
	// FlagBoolean flags take no value.
	FlagBoolean FlagType = "boolean"
	// FlagOption flags take a value.
	FlagOption FlagType = "option"
)

// Config is the host CLI as seen by the completion generator.
type Config struct {
	Bin            string    `yaml:"bin"`
	BinAliases     []string  `yaml:"binAliases,omitempty"`
	CacheDir       string    `yaml:"cacheDir,omitempty"`
	Shell          string    `yaml:"shell,omitempty"`
	TopicSeparator Separator `yaml:"topicSeparator,omitempty"`
	Topics         []Topic   `yaml:"topics,omitempty"`
	Plugins        []Plugin  `yaml:"plugins"`
}

// Plugin groups commands contributed by one plugin of the host.
type Plugin struct {
	Name     string    `yaml:"name"`
	Commands []Command `yaml:"commands"`
}

// Command is a runnable command of the host.
// ID is the colon-delimited path, e.g. "topic:sub:cmd".
type Command struct {
	ID          string          `yaml:"id"`
	Summary     string          `yaml:"summary,omitempty"`
	Description string          `yaml:"description,omitempty"`
	Hidden      bool            `yaml:"hidden,omitempty"`
	Aliases     []string        `yaml:"aliases,omitempty"`
	Flags       map[string]Flag `yaml:"flags,omitempty"`
}

// Flag is a command flag.
type Flag struct {
	Name        string   `yaml:"name,omitempty"`
	Char        string   `yaml:"char,omitempty"`
	Type        FlagType `yaml:"type"`
	Summary     string   `yaml:"summary,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Multiple    bool     `yaml:"multiple,omitempty"`
	Hidden      bool     `yaml:"hidden,omitempty"`
	AllowNo     bool     `yaml:"allowNo,omitempty"`
}

// Topic groups commands under a shared colon-delimited prefix.
type Topic struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty"`
}

// Commands returns the commands of every plugin in registration order.
func (c *Config) Commands() []Command {
	var cmds []Command
	for _, p := range c.Plugins {
		cmds = append(cmds, p.Commands...)
	}
	return cmds
}

// AllTopics returns the explicit topics followed by the topics implied by
// visible command ids. Every colon prefix of a command id is a topic,
// including the full id itself, which takes the command's summary as its
// description. Explicit topics win over implied ones.
func (c *Config) AllTopics() []Topic {
	topics := make([]Topic, 0, len(c.Topics))
	seen := make(map[string]bool)
	add := func(t Topic) {
		if t.Name == "" || seen[t.Name] {
			return
		}
		seen[t.Name] = true
		topics = append(topics, t)
	}

	for _, t := range c.Topics {
		add(t)
	}

	cmds := c.Commands()
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		add(Topic{Name: cmd.ID, Description: cmd.Summary})
	}
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		parts := strings.Split(cmd.ID, ":")
		for i := len(parts) - 1; i > 0; i-- {
			add(Topic{Name: strings.Join(parts[:i], ":")})
		}
	}
	return topics
}

// FlagNames returns the flag names of a command in ascending order.
func (c Command) FlagNames() []string {
	names := make([]string, 0, len(c.Flags))
	for name := range c.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBoolean reports whether the flag takes no value.
func (f Flag) IsBoolean() bool {
	return f.Type == FlagBoolean
}

// IsOption reports whether the flag takes a value.
func (f Flag) IsOption() bool {
	return f.Type == FlagOption
}
