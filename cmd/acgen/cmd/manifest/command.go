// Package manifest provides the command that prints the host registry as YAML.
package manifest

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/registry"
)

// NewCommand creates the manifest command.
func NewCommand(app application.Application) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the command registry as a YAML manifest",
		Long: `Print the registry completions are generated from as a YAML manifest.

The output can be edited and passed back with --manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, err := app.Host()
			if err != nil {
				return err
			}
			data, err := registry.MarshalManifest(host)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := afero.WriteFile(app.Fs(), out, data, constants.FilePermissions); err != nil {
				return errors.WrapIO("write", out, err)
			}
			app.Logger().Info().Str("path", out).Msg("Wrote manifest")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the manifest to this file instead of stdout")

	return cmd
}
