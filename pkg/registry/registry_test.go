package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/acgen/pkg/errors"
)

func testConfig() *Config {
	return &Config{
		Bin:            "mycli",
		TopicSeparator: SeparatorColon,
		Topics: []Topic{
			{Name: "db", Description: "Database tasks"},
		},
		Plugins: []Plugin{
			{
				Name: "core",
				Commands: []Command{
					{ID: "db:migrate", Summary: "Run migrations", Flags: map[string]Flag{
						"verbose": {Name: "verbose", Type: FlagBoolean},
						"dry-run": {Name: "dry-run", Type: FlagBoolean},
					}},
					{ID: "secret:cmd", Hidden: true},
				},
			},
			{
				Name: "extra",
				Commands: []Command{
					{ID: "a:b:c", Summary: "Deep"},
				},
			},
		},
	}
}

func TestCommandsKeepsRegistrationOrder(t *testing.T) {
	cmds := testConfig().Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "db:migrate", cmds[0].ID)
	assert.Equal(t, "secret:cmd", cmds[1].ID)
	assert.Equal(t, "a:b:c", cmds[2].ID)
}

func TestAllTopics(t *testing.T) {
	topics := testConfig().AllTopics()

	byName := make(map[string]Topic)
	var names []string
	for _, topic := range topics {
		byName[topic.Name] = topic
		names = append(names, topic.Name)
	}

	assert.Equal(t, []string{"db", "db:migrate", "a:b:c", "a:b", "a"}, names)
	assert.Equal(t, "Database tasks", byName["db"].Description, "explicit topic wins")
	assert.Equal(t, "Run migrations", byName["db:migrate"].Description)
	assert.Empty(t, byName["a:b"].Description)
	assert.NotContains(t, byName, "secret")
	assert.NotContains(t, byName, "secret:cmd")
}

func TestFlagNamesSorted(t *testing.T) {
	cmd := testConfig().Commands()[0]
	assert.Equal(t, []string{"dry-run", "verbose"}, cmd.FlagNames())
	assert.Empty(t, Command{ID: "x"}.FlagNames())
}

func TestFlagKinds(t *testing.T) {
	assert.True(t, Flag{Type: FlagBoolean}.IsBoolean())
	assert.False(t, Flag{Type: FlagBoolean}.IsOption())
	assert.True(t, Flag{Type: FlagOption}.IsOption())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty separator is allowed", mutate: func(c *Config) { c.TopicSeparator = "" }},
		{name: "missing bin", mutate: func(c *Config) { c.Bin = "" }, wantErr: true},
		{name: "bad separator", mutate: func(c *Config) { c.TopicSeparator = "/" }, wantErr: true},
		{name: "empty topic", mutate: func(c *Config) { c.Topics = append(c.Topics, Topic{}) }, wantErr: true},
		{name: "duplicate topic", mutate: func(c *Config) { c.Topics = append(c.Topics, Topic{Name: "db"}) }, wantErr: true},
		{
			name: "duplicate command",
			mutate: func(c *Config) {
				c.Plugins[1].Commands = append(c.Plugins[1].Commands, Command{ID: "db:migrate"})
			},
			wantErr: true,
		},
		{
			name: "alias collides with command",
			mutate: func(c *Config) {
				c.Plugins[1].Commands[0].Aliases = []string{"db:migrate"}
			},
			wantErr: true,
		},
		{
			name: "unknown flag type",
			mutate: func(c *Config) {
				c.Plugins[1].Commands[0].Flags = map[string]Flag{"x": {Name: "x", Type: "string"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
