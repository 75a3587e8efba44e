// Package state provides the commands that show the registry of this device.
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

// Overview is the structured output of the state command.
type Overview struct {
	Institution *bundle.Institution  `json:"institution" yaml:"institution"`
	Lifecycle   string               `json:"lifecycle" yaml:"lifecycle"`
	Residents   int                  `json:"residents" yaml:"residents"`
	Territories int                  `json:"territories" yaml:"territories"`
	Agents      int                  `json:"agents" yaml:"agents"`
	Logs        int                  `json:"logs" yaml:"logs"`
	Config      *bundle.BackupConfig `json:"config" yaml:"config"`
	BackupDue   bool                 `json:"backupDue" yaml:"backupDue"`
}

// NewCommand creates the state command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "state",
		GroupID: "management",
		Short:   "Show the registry of this device",
		Example: `  cadastro state                     # Overview
  cadastro state residents --search maria
  cadastro state logs --action SYNC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}

			b := reg.State()
			lifecycle := reg.Lifecycle()
			due := reg.BackupDue()
			overview := Overview{
				Institution: b.Institution,
				Lifecycle:   lifecycle.String(),
				Residents:   len(b.Residents),
				Territories: len(b.Territories),
				Agents:      len(b.Agents),
				Logs:        len(b.Logs),
				Config:      b.Config,
				BackupDue:   due,
			}

			if err := output.Write(cmd.OutOrStdout(), overview, table.StateToTableData(b, lifecycle, due), globals.Parse(cmd)); err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Hints(notify.NewContextBuilder().FromCommand(cmd, args).FromRegistry(reg).Build())
		},
	}

	cmd.AddCommand(NewResidentsCommand(app))
	cmd.AddCommand(NewTerritoriesCommand(app))
	cmd.AddCommand(NewLogsCommand(app))
	cmd.AddCommand(NewConfigCommand(app))

	return cmd
}
