package autocomplete

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/acgen/pkg/registry"
)

func topicNames(m *Metadata) []string {
	return lo.Map(m.Topics, func(t TopicCompletion, _ int) string { return t.Name })
}

func commandIDs(m *Metadata) []string {
	return lo.Map(m.Commands, func(c CommandCompletion, _ int) string { return c.ID })
}

func TestExtractKeepsTopicsWithDescendants(t *testing.T) {
	cfg := &registry.Config{
		Bin: "mycli",
		Topics: []registry.Topic{
			{Name: "x"},
			{Name: "a:b:c"},
			{Name: "a", Description: "A things"},
			{Name: "a:b"},
		},
	}

	m := Extract(cfg, registry.SeparatorColon)

	assert.Equal(t, []string{"a", "a:b"}, topicNames(m))
	assert.Equal(t, "A things", m.Topics[0].Description)
	assert.Equal(t, "a b commands", m.Topics[1].Description)
	assert.Empty(t, m.CommandTopics)
}

func TestExtractAliases(t *testing.T) {
	cfg := &registry.Config{
		Bin: "mycli",
		Plugins: []registry.Plugin{{
			Name: "core",
			Commands: []registry.Command{{
				ID:      "foo",
				Summary: "Do foo",
				Aliases: []string{"bar:baz:qux"},
				Flags:   map[string]registry.Flag{"force": {Name: "force", Type: registry.FlagBoolean}},
			}},
		}},
	}

	m := Extract(cfg, registry.SeparatorColon)

	assert.Equal(t, []string{"foo", "bar:baz:qux"}, commandIDs(m))
	alias := m.Commands[1]
	assert.Equal(t, "Do foo", alias.Summary)
	assert.Equal(t, m.Commands[0].Flags, alias.Flags)

	assert.Equal(t, []string{"bar", "bar:baz"}, topicNames(m))
	assert.Equal(t, "bar commands", m.Topics[0].Description)
	assert.Equal(t, "bar baz commands", m.Topics[1].Description)
	assert.Empty(t, cfg.Topics, "the registry is left untouched")
}

func TestExtractHidden(t *testing.T) {
	cfg := dbHost(registry.SeparatorColon)
	cfg.Plugins[0].Commands = append(cfg.Plugins[0].Commands, registry.Command{
		ID:     "db:drop",
		Hidden: true,
	})

	m := Extract(cfg, registry.SeparatorColon)

	assert.Equal(t, []string{"db:migrate"}, commandIDs(m))
	flags := lo.Map(m.Commands[0].Flags, func(f FlagCompletion, _ int) string { return f.Name })
	assert.Equal(t, []string{"dry-run"}, flags)
	assert.False(t, m.Commands[0].HelpDeclared)
}

func TestExtractCommandTopics(t *testing.T) {
	m := Extract(configHost(registry.SeparatorSpace), registry.SeparatorSpace)

	assert.Equal(t, []string{"config"}, topicNames(m))
	assert.Equal(t, "Show configuration", m.Topics[0].Description)
	assert.Equal(t, []string{"config"}, m.CommandTopics)
	assert.True(t, m.IsCommandTopic("config"))
	assert.False(t, m.IsCommandTopic("config:get"))

	cmd, ok := m.Command("config:get")
	require.True(t, ok)
	require.Len(t, cmd.Flags, 1)
	assert.Equal(t, []string{"name", "email"}, cmd.Flags[0].Options)
	assert.True(t, cmd.Flags[0].IsOption())
}

func TestExtractFlags(t *testing.T) {
	cfg := &registry.Config{
		Bin: "mycli",
		Plugins: []registry.Plugin{{
			Name: "core",
			Commands: []registry.Command{{
				ID:          "run",
				Description: "Run it\nwith details",
				Flags: map[string]registry.Flag{
					"zeta":  {Name: "zeta", Type: registry.FlagOption, Description: "Zeta [z]"},
					"alpha": {Name: "alpha", Type: registry.FlagBoolean, AllowNo: true},
					"help":  {Name: "help", Type: registry.FlagBoolean, Hidden: true},
					"mid":   {Type: registry.FlagOption, AllowNo: true, Multiple: true},
				},
			}},
		}},
	}

	m := Extract(cfg, registry.SeparatorColon)
	require.Len(t, m.Commands, 1)
	cmd := m.Commands[0]

	assert.Equal(t, "Run it", cmd.Summary)
	assert.True(t, cmd.HelpDeclared, "a hidden help flag still counts as declared")
	require.Len(t, cmd.Flags, 3)
	assert.Equal(t, "alpha", cmd.Flags[0].Name)
	assert.True(t, cmd.Flags[0].AllowNo)
	assert.Equal(t, "mid", cmd.Flags[1].Name, "name falls back to the map key")
	assert.False(t, cmd.Flags[1].AllowNo, "only boolean flags have a --no- form")
	assert.True(t, cmd.Flags[1].Multiple)
	assert.Equal(t, `Zeta \\[z\\]`, cmd.Flags[2].Summary)
}

func TestIsChild(t *testing.T) {
	assert.True(t, isChild("a", ""))
	assert.False(t, isChild("a:b", ""))
	assert.True(t, isChild("a:b", "a"))
	assert.False(t, isChild("a:b:c", "a"))
	assert.False(t, isChild("ab:c", "a"))
	assert.False(t, isChild("a", "a"))
	assert.Equal(t, "c", lastSegment("a:b:c"))
	assert.Equal(t, "a", lastSegment("a"))
}
