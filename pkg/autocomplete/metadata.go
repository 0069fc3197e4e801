package autocomplete

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/agentstation/acgen/pkg/registry"
)

// Metadata is the immutable snapshot every renderer consumes.
type Metadata struct {
	Bin        string
	BinAliases []string
	Separator  registry.Separator

	// Commands holds visible commands followed by one entry per alias,
	// in registration order.
	Commands []CommandCompletion

	// Topics holds the topics that group at least one other topic, plus
	// the ancestors implied by alias ids, sorted by name.
	Topics []TopicCompletion

	// CommandTopics lists the topic names that are also command ids.
	CommandTopics []string
}

// CommandCompletion is a command as seen by the renderers.
type CommandCompletion struct {
	ID      string
	Summary string

	// Flags are the visible flags in ascending name order.
	Flags []FlagCompletion

	// HelpDeclared is set when the command declares its own help flag,
	// hidden or not, so no implicit --help is rendered.
	HelpDeclared bool
}

// FlagCompletion is a visible flag with its summary already sanitized.
type FlagCompletion struct {
	Name     string
	Char     string
	Summary  string
	Type     registry.FlagType
	Options  []string
	Multiple bool
	AllowNo  bool
}

// TopicCompletion is a topic with its description already sanitized.
type TopicCompletion struct {
	Name        string
	Description string
}

// IsBoolean reports whether the flag takes no value.
func (f FlagCompletion) IsBoolean() bool {
	return f.Type == registry.FlagBoolean
}

// IsOption reports whether the flag takes a value.
func (f FlagCompletion) IsOption() bool {
	return f.Type == registry.FlagOption
}

// Extract builds the metadata snapshot of cfg for the given separator.
// It does not modify cfg.
func Extract(cfg *registry.Config, sep registry.Separator) *Metadata {
	m := &Metadata{
		Bin:        cfg.Bin,
		BinAliases: append([]string(nil), cfg.BinAliases...),
		Separator:  sep,
	}

	all := lo.Filter(cfg.AllTopics(), func(t registry.Topic, _ int) bool { return !t.Hidden })
	registered := lo.KeyBy(all, func(t registry.Topic) string { return t.Name })

	for _, t := range all {
		hasChild := lo.SomeBy(all, func(sub registry.Topic) bool {
			return strings.HasPrefix(sub.Name, t.Name+":")
		})
		if !hasChild {
			continue
		}
		m.Topics = append(m.Topics, TopicCompletion{
			Name:        t.Name,
			Description: topicDescription(t.Name, t.Description),
		})
	}

	for _, cmd := range cfg.Commands() {
		if cmd.Hidden {
			continue
		}
		completion := newCommandCompletion(cmd)
		m.Commands = append(m.Commands, completion)

		for _, alias := range cmd.Aliases {
			aliased := completion
			aliased.ID = alias
			m.Commands = append(m.Commands, aliased)

			// Aliases need not follow the command tree, so every topic on
			// the way to the alias must exist.
			parts := strings.Split(alias, ":")
			for i := 1; i < len(parts); i++ {
				name := strings.Join(parts[:i], ":")
				if m.hasTopic(name) {
					continue
				}
				m.Topics = append(m.Topics, TopicCompletion{
					Name:        name,
					Description: topicDescription(name, registered[name].Description),
				})
			}
		}
	}

	sort.SliceStable(m.Topics, func(i, j int) bool {
		return m.Topics[i].Name < m.Topics[j].Name
	})

	ids := lo.Map(m.Commands, func(c CommandCompletion, _ int) string { return c.ID })
	for _, t := range m.Topics {
		if lo.Contains(ids, t.Name) {
			m.CommandTopics = append(m.CommandTopics, t.Name)
		}
	}
	return m
}

func newCommandCompletion(cmd registry.Command) CommandCompletion {
	summary := cmd.Summary
	if summary == "" {
		summary = cmd.Description
	}
	c := CommandCompletion{
		ID:      cmd.ID,
		Summary: SanitizeSummary(summary),
	}
	for _, key := range cmd.FlagNames() {
		f := cmd.Flags[key]
		name := f.Name
		if name == "" {
			name = key
		}
		if name == "help" {
			c.HelpDeclared = true
		}
		if f.Hidden {
			continue
		}
		flagSummary := f.Summary
		if flagSummary == "" {
			flagSummary = f.Description
		}
		c.Flags = append(c.Flags, FlagCompletion{
			Name:     name,
			Char:     f.Char,
			Summary:  SanitizeSummary(flagSummary),
			Type:     f.Type,
			Options:  append([]string(nil), f.Options...),
			Multiple: f.Multiple,
			AllowNo:  f.AllowNo && f.IsBoolean(),
		})
	}
	return c
}

func topicDescription(name, description string) string {
	if description != "" {
		return SanitizeSummary(description)
	}
	return strings.ReplaceAll(name, ":", " ") + " commands"
}

func (m *Metadata) hasTopic(name string) bool {
	return lo.ContainsBy(m.Topics, func(t TopicCompletion) bool { return t.Name == name })
}

// Command returns the command with the given id.
func (m *Metadata) Command(id string) (CommandCompletion, bool) {
	return lo.Find(m.Commands, func(c CommandCompletion) bool { return c.ID == id })
}

// IsCommandTopic reports whether name is both a topic and a command id.
func (m *Metadata) IsCommandTopic(name string) bool {
	return lo.Contains(m.CommandTopics, name)
}

// childTopics returns the topics exactly one segment below parent.
// An empty parent selects the top-level topics.
func (m *Metadata) childTopics(parent string) []TopicCompletion {
	return lo.Filter(m.Topics, func(t TopicCompletion, _ int) bool { return isChild(t.Name, parent) })
}

// childCommands returns the commands exactly one segment below parent.
func (m *Metadata) childCommands(parent string) []CommandCompletion {
	return lo.Filter(m.Commands, func(c CommandCompletion, _ int) bool { return isChild(c.ID, parent) })
}

func isChild(id, parent string) bool {
	if parent == "" {
		return id != "" && !strings.Contains(id, ":")
	}
	rest, ok := strings.CutPrefix(id, parent+":")
	return ok && rest != "" && !strings.Contains(rest, ":")
}

func lastSegment(id string) string {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}
