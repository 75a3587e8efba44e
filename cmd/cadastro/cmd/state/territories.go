package state

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
)

// NewTerritoriesCommand creates the territories subcommand.
func NewTerritoriesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "territories",
		Aliases: []string{"territory"},
		Short:   "List mapped territories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}
			territories := reg.State().Territories
			return output.Write(cmd.OutOrStdout(), territories, table.TerritoriesToTableData(territories), globals.Parse(cmd))
		},
	}
}
