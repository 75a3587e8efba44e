// Package report provides the commands that summarize registry data.
package report

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/internal/report"
	"github.com/agentstation/cadastro/internal/utils/fileutil"
	"github.com/agentstation/cadastro/pkg/constants"
)

// NewCommand creates the report command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "management",
		Short:   "Summarize registry data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewHealthCommand(app))
	cmd.AddCommand(NewStatsCommand(app))
	cmd.AddCommand(NewCSVCommand(app))
	cmd.AddCommand(NewMarkdownCommand(app))

	return cmd
}

// NewHealthCommand creates the health subcommand.
func NewHealthCommand(app appcontext.Interface) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Grade how complete resident records are",
		Long: `Health grades the registry: "--" when empty, "B" when any resident has no
national ID, "A+" otherwise. With --strict, national IDs failing the check
digits also count against the grade.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}
			health := report.Assess(reg.State().Residents, strict)
			return output.Write(cmd.OutOrStdout(), health, table.HealthToTableData(health), globals.Parse(cmd))
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "count national IDs with invalid check digits")

	return cmd
}

// NewStatsCommand creates the stats subcommand.
func NewStatsCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show household, student and neighborhood counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}
			stats := report.Summarize(reg.State(), app.Now())
			return output.Write(cmd.OutOrStdout(), stats, table.StatsToTableData(stats), globals.Parse(cmd))
		},
	}
}

// NewCSVCommand creates the csv subcommand.
func NewCSVCommand(app appcontext.Interface) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export residents as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}
			residents := reg.State().Residents
			return writeTo(cmd, file, func(w io.Writer) error {
				return report.WriteCSV(w, residents)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write to this file instead of stdout")

	return cmd
}

// NewMarkdownCommand creates the markdown subcommand.
func NewMarkdownCommand(app appcontext.Interface) *cobra.Command {
	var (
		file   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:     "markdown",
		Aliases: []string{"md"},
		Short:   "Write a markdown overview of the registry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry(cmd.Context())
			if err != nil {
				return err
			}
			state := reg.State()
			now := app.Now()
			return writeTo(cmd, file, func(w io.Writer) error {
				return report.WriteMarkdown(w, state, now, strict)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "count national IDs with invalid check digits")

	return cmd
}

// writeTo renders into the command output, or atomically into file.
func writeTo(cmd *cobra.Command, file string, render func(io.Writer) error) error {
	if file == "" {
		return render(cmd.OutOrStdout())
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return fileutil.WriteFile(file, buf.Bytes(), os.FileMode(constants.FilePermissions))
}
