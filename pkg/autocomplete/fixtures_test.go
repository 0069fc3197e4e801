package autocomplete

import (
	"strings"

	"github.com/agentstation/acgen/pkg/registry"
)

// dbHost has one topic and one command with a visible and a hidden flag.
func dbHost(sep registry.Separator) *registry.Config {
	return &registry.Config{
		Bin:            "mycli",
		CacheDir:       "/cache",
		TopicSeparator: sep,
		Topics:         []registry.Topic{{Name: "db", Description: "database commands"}},
		Plugins: []registry.Plugin{{
			Name: "core",
			Commands: []registry.Command{{
				ID:      "db:migrate",
				Summary: "run migrations",
				Flags: map[string]registry.Flag{
					"dry-run": {Name: "dry-run", Type: registry.FlagBoolean, Summary: "Print the plan"},
					"secret":  {Name: "secret", Type: registry.FlagBoolean, Summary: "Do not show", Hidden: true},
				},
			}},
		}},
	}
}

// configHost has a config command sharing its name with the config topic.
func configHost(sep registry.Separator) *registry.Config {
	return &registry.Config{
		Bin:            "mycli",
		BinAliases:     []string{"mc"},
		CacheDir:       "/cache",
		TopicSeparator: sep,
		Plugins: []registry.Plugin{{
			Name: "core",
			Commands: []registry.Command{
				{
					ID:      "config",
					Summary: "Show configuration",
					Flags: map[string]registry.Flag{
						"json": {Name: "json", Type: registry.FlagBoolean, Summary: "Output JSON"},
					},
				},
				{
					ID:      "config:get",
					Summary: "Get a value",
					Flags: map[string]registry.Flag{
						"key": {Name: "key", Char: "k", Type: registry.FlagOption, Summary: "Key", Options: []string{"name", "email"}},
					},
				},
				{ID: "config:set", Summary: "Set a value"},
			},
		}},
	}
}

// linesContaining returns the lines of s containing substr.
func linesContaining(s, substr string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			lines = append(lines, line)
		}
	}
	return lines
}
