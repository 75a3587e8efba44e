// Package backup provides the command that writes a full backup.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/cmd/cadastro/cmd/export"
	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/audit"
)

// NewCommand creates the backup command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "backup [dir]",
		GroupID: "core",
		Short:   "Write a full backup of this device",
		Long: `Backup writes every collection of this device, agents and settings
included, to a timestamped file readable only by the current user.

Without a directory the backup goes to the configured backup directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.BackupDir()
			if len(args) == 1 {
				dir = args[0]
			}

			ctx := cmd.Context()
			notifier := notify.NewFromCommand(cmd)
			hctx := notify.NewContextBuilder().FromCommand(cmd, args)

			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}

			path, err := reg.Backup(ctx, dir)
			if err != nil {
				return notifier.Failure(err, hctx.Build())
			}

			file := export.File{Kind: "backup", Path: path}
			if err := output.Write(cmd.OutOrStdout(), file, table.FileToTableData(file.Kind, path), globals.Parse(cmd)); err != nil {
				return err
			}

			return notifier.Success(audit.MsgManualBackup, hctx.FromRegistry(reg).Build())
		},
	}
}
