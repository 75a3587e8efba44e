// Package sync provides the command that merges station packages.
package sync

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/notify"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/internal/cmd/table"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/reconciler"
	pkgsync "github.com/agentstation/cadastro/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun      bool
	MatchDigits bool
	Force       bool
	Timeout     time.Duration
}

// NewCommand creates the sync command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync <package.json>",
		GroupID: "core",
		Short:   "Merge a station collection package into the registry",
		Long: `Sync folds a collection package exported by a station into the registry
of the central server.

The package is validated before anything changes. Residents are matched by
national ID (CPF): known residents are updated with the fields the station
sent, unknown ones are added. Territories are added when their street and
number are new. Syncing the same package twice changes nothing the second
time.`,
		Example: `  cadastro sync collection_station_North_2024-05-01.json
  cadastro sync pkg.json --dry-run           # Preview the merge
  cadastro sync pkg.json --match-digits      # Match 111.222.333-44 with 11122233344`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "preview the merge without saving")
	cmd.Flags().BoolVar(&flags.MatchDigits, "match-digits", false, "match national IDs by digits only, ignoring punctuation")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "merge even if this device is not the central server")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.CommandTimeout, "abort if reading and merging the package takes longer than this")

	return cmd
}

// Summary is the structured output of a sync.
type Summary struct {
	Package            string              `json:"package" yaml:"package"`
	New                int                 `json:"new" yaml:"new"`
	Updated            int                 `json:"updated" yaml:"updated"`
	TerritoriesAdded   int                 `json:"territoriesAdded" yaml:"territoriesAdded"`
	TerritoriesSkipped int                 `json:"territoriesSkipped" yaml:"territoriesSkipped"`
	Changes            []reconciler.Change `json:"changes" yaml:"changes"`
	Lifecycle          []string            `json:"lifecycle" yaml:"lifecycle"`
	DryRun             bool                `json:"dryRun" yaml:"dryRun"`
	Saved              bool                `json:"saved" yaml:"saved"`
}

// NewSummary flattens a sync result for output.
func NewSummary(r *pkgsync.Result) Summary {
	s := Summary{Package: r.Package, DryRun: r.DryRun, Saved: r.Saved, Changes: []reconciler.Change{}}
	for _, st := range r.Lifecycle {
		s.Lifecycle = append(s.Lifecycle, st.String())
	}
	if r.Result != nil {
		s.New = r.New
		s.Updated = r.Updated
		s.TerritoriesAdded = r.TerritoriesAdded
		s.TerritoriesSkipped = r.TerritoriesSkipped
		if r.Changes != nil {
			s.Changes = r.Changes
		}
	}
	return s
}

func run(cmd *cobra.Command, app appcontext.Interface, args []string, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()
	notifier := notify.NewFromCommand(cmd)
	hctx := notify.NewContextBuilder().FromCommand(cmd, args).WithDryRun(flags.DryRun)

	reg, err := app.Registry(ctx)
	if err != nil {
		return err
	}

	opts := []pkgsync.Option{
		pkgsync.WithDryRun(flags.DryRun),
		pkgsync.WithMatchDigits(flags.MatchDigits),
		pkgsync.WithForce(flags.Force),
	}
	if flags.Timeout > 0 {
		opts = append(opts, pkgsync.WithTimeout(flags.Timeout))
	}

	result, err := reg.Sync(ctx, args[0], opts...)
	if err != nil {
		return notifier.Failure(err, hctx.FromRegistry(reg).Build())
	}

	logger.Debug().
		Str("package", result.Package).
		Int("new", result.New).
		Int("updated", result.Updated).
		Msg("Package merged")

	// Terminals only get a table when residents were overlaid.
	globalFlags := globals.Parse(cmd)
	summary := NewSummary(result)
	if len(summary.Changes) > 0 || output.IsStructured(output.DetectFormat(globalFlags.Output)) {
		if err := output.Write(cmd.OutOrStdout(), summary, table.ChangesToTableData(summary.Changes), globalFlags); err != nil {
			return err
		}
	}

	return notifier.Success(result.Summary(), hctx.FromRegistry(reg).Build(), result.Details()...)
}
