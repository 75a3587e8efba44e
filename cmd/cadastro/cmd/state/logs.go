package state

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/bundle"
)

// NewLogsCommand creates the logs subcommand.
func NewLogsCommand(app appcontext.Interface) *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the audit log, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}

			logs := reg.Logs(bundle.Action(strings.ToUpper(action)))
			if limit > 0 && len(logs) > limit {
				logs = logs[:limit]
			}
			return output.Write(cmd.OutOrStdout(), logs, table.LogsToTableData(logs), globals.Parse(cmd))
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "only entries of this action (CREATE, EDIT, SYNC, BACKUP, ...)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of entries to show, 0 for all")

	return cmd
}
