package autocomplete

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/pkg/logging"
)

// NewCreateCommand creates the command that writes the completion cache.
func NewCreateCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:    "create",
		Short:  "Create autocomplete setup scripts and completion functions",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := newGenerator(app)
			if err != nil {
				return err
			}
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			ctx = logging.WithOperation(ctx, "autocomplete create")
			return gen.Create(ctx)
		},
	}
}
