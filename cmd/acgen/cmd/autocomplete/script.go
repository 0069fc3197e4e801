package autocomplete

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/internal/cmd/constants"
)

// NewScriptCommand creates the command printing the profile snippet.
func NewScriptCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:       "script [shell]",
		Short:     "Output autocomplete script for shells",
		Long:      "Print the line that sources the setup script. Without a shell argument the configured shell is used.",
		Hidden:    true,
		ValidArgs: constants.ScriptShells,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := newGenerator(app)
			if err != nil {
				return err
			}

			var shell string
			if len(args) > 0 {
				shell = args[0]
			}
			script, err := gen.Script(shell)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}
}
