// Package sanitize provides the command that repairs a bundle file without
// touching the registry.
package sanitize

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
	"github.com/agentstation/cadastro/pkg/sanitizer"
	"github.com/agentstation/cadastro/pkg/save"
)

// NewCommand creates the sanitize command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "sanitize <bundle.json>",
		GroupID: "core",
		Short:   "Fill missing fields of a bundle with safe defaults",
		Long: `Sanitize reads any bundle (a backup, a station package, or a file
written by an older version), fills every missing field with its default and
writes the result. The registry of this device is not changed.

Running sanitize on its own output produces the same file again.`,
		Example: `  cadastro sanitize old_backup.json -w fixed.json
  cadastro sanitize pkg.json --format yaml   # Inspect as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			in, err := bundle.DecodeFile(ctx, args[0])
			if err != nil {
				return err
			}

			s, err := sanitizer.New(sanitizer.WithClock(identity.Clock(app.Now)))
			if err != nil {
				return err
			}
			out := s.Sanitize(in)

			logger.Debug().
				Str("file", args[0]).
				Int("residents", len(out.Residents)).
				Int("territories", len(out.Territories)).
				Msg("Bundle sanitized")

			if outPath != "" {
				return bundle.Write(out, save.WithPath(outPath))
			}

			format := save.FormatJSON
			if output.DetectFormat(globals.Parse(cmd).Output) == output.FormatYAML {
				format = save.FormatYAML
			}
			return bundle.Write(out, save.WithWriter(cmd.OutOrStdout()), save.WithFormat(format))
		},
	}

	cmd.Flags().StringVarP(&outPath, "write", "w", "", "write the result to this file instead of stdout")

	return cmd
}
