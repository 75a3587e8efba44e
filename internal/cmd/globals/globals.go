// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds global common flags across all commands.
type Flags struct {
	Output  string
	Quiet   bool
	Verbose bool
	NoColor bool
	DataDir string
}

// AddFlags adds the common persistent flags to the root command, starting
// from the given defaults.
func AddFlags(cmd *cobra.Command, defaults Flags) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVarP(&flags.Output, "format", "o", defaults.Output,
		"output format: table, json, yaml, wide")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", defaults.Quiet,
		"minimal output (shortcut for --log-level=warn)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", defaults.Verbose,
		"verbose output (shortcut for --log-level=debug)")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", defaults.NoColor,
		"disable colored output")
	cmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", defaults.DataDir,
		"directory holding the registry state")

	return flags
}

// Parse extracts global flags from the command hierarchy. Flags the root
// command does not define are left empty.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd.Root()

	output, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	dataDir, _ := root.PersistentFlags().GetString("data-dir")

	return &Flags{
		Output:  output,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
		DataDir: dataDir,
	}
}
