// Package restore provides the command that replaces the registry with a
// backup.
package restore

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/audit"
)

// NewCommand creates the restore command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "restore <backup.json>",
		GroupID: "core",
		Short:   "Replace the registry with the contents of a backup",
		Long: `Restore loads a full backup and replaces every collection of this
device with it. Missing fields are filled with safe defaults first, so even
backups written by older versions load.

Restoring discards the current state. Take a backup first if unsure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			notifier := notify.NewFromCommand(cmd)
			hctx := notify.NewContextBuilder().FromCommand(cmd, args)

			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}

			if err := reg.Restore(ctx, args[0]); err != nil {
				return notifier.Failure(err, hctx.Build())
			}

			state := reg.State()
			rows := table.StateToTableData(state, reg.Lifecycle(), reg.BackupDue())
			if err := output.Write(cmd.OutOrStdout(), state, rows, globals.Parse(cmd)); err != nil {
				return err
			}

			return notifier.Success(audit.RestoreMessage(filepath.Base(args[0])), hctx.FromRegistry(reg).Build())
		},
	}
}
