package state

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
)

// NewResidentsCommand creates the residents subcommand.
func NewResidentsCommand(app appcontext.Interface) *cobra.Command {
	var (
		search       string
		neighborhood string
		limit        int
	)

	cmd := &cobra.Command{
		Use:     "residents",
		Aliases: []string{"resident"},
		Short:   "List registered residents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}

			residents := Filter(reg.State().Residents, search, neighborhood)
			if limit > 0 && len(residents) > limit {
				residents = residents[:limit]
			}

			globalFlags := globals.Parse(cmd)
			wide := output.DetectFormat(globalFlags.Output) == output.FormatWide
			rows := table.ResidentsToTableData(residents, app.Now(), wide)
			return output.Write(cmd.OutOrStdout(), residents, rows, globalFlags)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match name or national ID")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "only residents of this neighborhood")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of residents to show")

	return cmd
}

// Filter returns the residents whose name contains search (case-insensitive)
// or whose national ID digits contain the digits of search, restricted to
// neighborhood when one is given.
func Filter(residents []bundle.Resident, search, neighborhood string) []bundle.Resident {
	search = strings.ToLower(strings.TrimSpace(search))
	digits := identity.Digits(search)

	out := make([]bundle.Resident, 0, len(residents))
	for _, r := range residents {
		if neighborhood != "" && !strings.EqualFold(r.Neighborhood, neighborhood) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			(digits == "" || !strings.Contains(identity.Digits(r.CPF), digits)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
