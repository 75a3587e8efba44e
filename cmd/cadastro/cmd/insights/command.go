// Package insights provides the command that asks a model for policy
// insights about the registered community.
package insights

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/logging"
)

// NewCommand creates the insights command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "insights",
		GroupID: "management",
		Short:   "Generate policy insights with Gemini",
		Long: `Insights sends a sample of resident records to Gemini and prints short
findings about community health, education, urban development and the
socioeconomic profile.

Requires GEMINI_API_KEY. Without it, or when the request fails, nothing is
printed and the command still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			reg, err := app.Registry(ctx)
			if err != nil {
				return err
			}
			client, err := app.Insights(ctx)
			if err != nil {
				return err
			}

			items := client.Generate(ctx, reg.State().Residents)
			if err := output.Write(cmd.OutOrStdout(), items, table.InsightsToTableData(items), globals.Parse(cmd)); err != nil {
				return err
			}

			hctx := notify.NewContextBuilder().FromCommand(cmd, args).FromRegistry(reg).WithInsights(client.Enabled()).Build()
			return notify.NewFromCommand(cmd).Hints(hctx)
		},
	}
}
