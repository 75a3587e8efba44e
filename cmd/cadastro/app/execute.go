package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Execute runs the cadastro CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cadastro",
		Short:   "Municipal resident registry",
		Version: a.version,
		Long: `Cadastro keeps the resident registry of a municipality in sync across
offline collection stations and the central server.

Stations register residents and territories locally and export a collection
package. The server folds packages in by national ID, so repeated syncs of
the same package never duplicate residents.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.cadastro.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	globals.AddFlags(rootCmd, globals.Flags{
		Output:  a.config.Format,
		Quiet:   a.config.Quiet,
		Verbose: a.config.Verbose,
		NoColor: a.config.NoColor,
		DataDir: a.config.DataDir,
	})

	rootCmd.SetVersionTemplate("cadastro {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := globals.Parse(cmd)
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}
	// log-level is defined in createRootCommand, so an error indicates a programming error
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, logLevel, flags.DataDir)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
