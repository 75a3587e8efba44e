// Package export provides the command that writes a station's collection
// package for the central server.
package export

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/audit"
)

// File is the structured output of commands that write one file.
type File struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
}

// NewCommand creates the export command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "export [dir]",
		GroupID: "core",
		Short:   "Write the collection package for the central server",
		Long: `Export writes the residents and territories of this station to a
collection package named after the institution city and today's date.

Agents, audit logs and device settings stay on the station.`,
		Example: `  cadastro export              # Write to the current directory
  cadastro export /media/usb   # Write to a removable drive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			ctx := cmd.Context()
			notifier := notify.NewFromCommand(cmd)

			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}

			path, err := reg.ExportForServer(ctx, dir)
			if err != nil {
				return notifier.Failure(err, notify.NewContextBuilder().FromCommand(cmd, args).Build())
			}

			file := File{Kind: "package", Path: path}
			if err := output.Write(cmd.OutOrStdout(), file, table.FileToTableData(file.Kind, path), globals.Parse(cmd)); err != nil {
				return err
			}

			hctx := notify.NewContextBuilder().FromCommand(cmd, []string{path}).FromRegistry(reg).Build()
			return notifier.Success(audit.MsgPackageGenerated, hctx)
		},
	}
}
