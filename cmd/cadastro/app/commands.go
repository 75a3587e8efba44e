package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/cmd/cadastro/cmd/backup"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/export"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/insights"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/report"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/restore"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/sanitize"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/state"
	"github.com/agentstation/cadastro/cmd/cadastro/cmd/sync"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(restore.NewCommand(a))
	rootCmd.AddCommand(backup.NewCommand(a))
	rootCmd.AddCommand(sanitize.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(state.NewCommand(a))
	rootCmd.AddCommand(report.NewCommand(a))
	rootCmd.AddCommand(insights.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("cadastro %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
