package state

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/bundle"
)

// NewConfigCommand creates the config subcommand. Without flags it shows
// the backup settings; with flags it changes them.
func NewConfigCommand(app appcontext.Interface) *cobra.Command {
	var (
		frequency string
		auto      bool
		remind    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the backup settings of this device",
		Example: `  cadastro state config
  cadastro state config --frequency weekly --remind=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}

			cfg := bundle.DefaultBackupConfig()
			if current := reg.State().Config; current != nil {
				cfg = current
			}

			changed := false
			if cmd.Flags().Changed("frequency") {
				cfg.Frequency = bundle.Frequency(frequency)
				changed = true
			}
			if cmd.Flags().Changed("auto") {
				cfg.AutoBackupEnabled = auto
				changed = true
			}
			if cmd.Flags().Changed("remind") {
				cfg.RemindMe = remind
				changed = true
			}

			if changed {
				if err := reg.SetConfig(ctx, *cfg); err != nil {
					return notify.NewFromCommand(cmd).Failure(err, notify.NewContextBuilder().FromCommand(cmd, args).Build())
				}
			}

			state := reg.State()
			return output.Write(cmd.OutOrStdout(), state.Config, table.StateToTableData(state, reg.Lifecycle(), reg.BackupDue()), globals.Parse(cmd))
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", "", "backup frequency: daily, weekly or monthly")
	cmd.Flags().BoolVar(&auto, "auto", true, "write backups automatically when due")
	cmd.Flags().BoolVar(&remind, "remind", true, "show a reminder when a backup is due")

	return cmd
}
