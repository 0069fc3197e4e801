// Package autocomplete provides the hidden commands that write completion
// scripts to the cache and print the profile snippet loading them.
package autocomplete

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/pkg/autocomplete"
)

// NewCommand creates the autocomplete command with create/script subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "autocomplete",
		Short:  "Manage shell autocompletion scripts",
		Hidden: true,
		Long: `Generate tab-completion scripts for the host CLI.

Examples:
  # Write bash, zsh and the host shell's scripts to the cache
  acgen autocomplete create

  # Print the line to add to ~/.zshrc
  acgen autocomplete script zsh`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewCreateCommand(app))
	cmd.AddCommand(NewScriptCommand(app))

	return cmd
}

// newGenerator builds a generator for the app's host registry.
func newGenerator(app application.Application) (*autocomplete.Generator, error) {
	host, err := app.Host()
	if err != nil {
		return nil, err
	}
	return autocomplete.NewGenerator(host,
		autocomplete.WithFs(app.Fs()),
		autocomplete.WithSeparatorOverride(app.SeparatorOverride()),
	)
}
