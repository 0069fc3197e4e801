package registry

import (
	"fmt"

	"github.com/agentstation/acgen/pkg/errors"
)

// Validate checks the registry invariants the renderers rely on: a bin name,
// a known separator, flag kinds, unique topic names, and unique command ids
// after alias expansion.
func (c *Config) Validate() error {
	if c.Bin == "" {
		return errors.NewValidationError("bin", c.Bin, "cannot be empty")
	}
	switch c.TopicSeparator {
	case "", SeparatorColon, SeparatorSpace:
	default:
		return errors.NewValidationError("topicSeparator", c.TopicSeparator, `must be ":" or " "`)
	}

	topics := make(map[string]bool, len(c.Topics))
	for _, t := range c.Topics {
		if t.Name == "" {
			return errors.NewValidationError("topics", t, "topic name cannot be empty")
		}
		if topics[t.Name] {
			return errors.NewValidationError("topics", t.Name, "duplicate topic "+t.Name)
		}
		topics[t.Name] = true
	}

	ids := make(map[string]string)
	claim := func(id, owner string) error {
		if prev, ok := ids[id]; ok {
			return errors.NewValidationError("commands", id,
				fmt.Sprintf("command id %s declared by both %s and %s", id, prev, owner))
		}
		ids[id] = owner
		return nil
	}
	for _, cmd := range c.Commands() {
		if cmd.ID == "" {
			return errors.NewValidationError("commands", cmd, "command id cannot be empty")
		}
		if err := claim(cmd.ID, cmd.ID); err != nil {
			return err
		}
		for _, alias := range cmd.Aliases {
			if err := claim(alias, cmd.ID); err != nil {
				return err
			}
		}
		for name, f := range cmd.Flags {
			if f.Type != FlagBoolean && f.Type != FlagOption {
				return errors.NewValidationError("flags", f.Type,
					fmt.Sprintf("flag %s of %s has unknown type %q", name, cmd.ID, f.Type))
			}
		}
	}
	return nil
}
