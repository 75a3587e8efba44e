package hints

import (
	"strings"

	"github.com/agentstation/cadastro/pkg/bundle"
)

// Commands that providers react to.
const (
	cmdSync     = "sync"
	cmdExport   = "export"
	cmdBackup   = "backup"
	cmdRestore  = "restore"
	cmdInsights = "insights"
	cmdState    = "state"
)

// Error types reported by commands.
const (
	ErrorMode   = "mode"
	ErrorFormat = "format"
)

// RegisterDefaultProviders registers all standard cadastro hint providers.
func RegisterDefaultProviders(registry *Registry) {
	registry.RegisterFunc("backup", backupHintProvider)
	registry.RegisterFunc("sync", syncHintProvider)
	registry.RegisterFunc("export", exportHintProvider)
	registry.RegisterFunc("insights", insightsHintProvider)
	registry.RegisterFunc("onboarding", onboardingHintProvider)
}

// backupHintProvider reminds the operator of a due backup on every command
// but backup itself.
func backupHintProvider(ctx Context) []*Hint {
	if !ctx.BackupDue || ctx.Command == cmdBackup {
		return nil
	}
	return []*Hint{
		NewCommand("A backup of this device is due", "cadastro backup").WithTags("backup", "reminder"),
	}
}

func syncHintProvider(ctx Context) []*Hint {
	if ctx.Command != cmdSync {
		return nil
	}

	var hints []*Hint
	switch {
	case ctx.Succeeded && ctx.DryRun:
		hints = append(hints, NewCommand(
			"Nothing was saved. Apply the merge with",
			"cadastro sync "+strings.Join(ctx.Args, " "),
		).WithTags("next-step"))
	case !ctx.Succeeded && ctx.ErrorType == ErrorMode:
		hints = append(hints, NewCommand(
			"Packages are merged on the central server. To merge on this device anyway",
			"cadastro sync --force "+strings.Join(ctx.Args, " "),
		).WithTags("troubleshooting"))
	case !ctx.Succeeded && ctx.ErrorType == ErrorFormat:
		hints = append(hints, New(
			"The file must be a collection package exported by a station",
		).WithTags("troubleshooting"))
	}
	return hints
}

func exportHintProvider(ctx Context) []*Hint {
	if ctx.Command != cmdExport || !ctx.Succeeded || len(ctx.Args) == 0 {
		return nil
	}
	return []*Hint{
		NewCommand("Take the package to the central server and merge it", "cadastro sync "+ctx.Args[0]).WithTags("next-step"),
	}
}

func insightsHintProvider(ctx Context) []*Hint {
	if ctx.Command != cmdInsights || ctx.InsightsEnabled {
		return nil
	}
	return []*Hint{
		NewCommand("Insights need a Gemini API key", "export GEMINI_API_KEY=your-key-here").WithTags("setup"),
	}
}

// onboardingHintProvider helps a device that has no residents yet.
func onboardingHintProvider(ctx Context) []*Hint {
	if ctx.Residents > 0 || ctx.Command != cmdState {
		return nil
	}
	if ctx.Mode == bundle.ModeServer {
		return []*Hint{
			NewCommand("Merge a station package to populate the registry", "cadastro sync <package.json>").WithTags("onboarding"),
		}
	}
	return []*Hint{
		NewCommand("Load an existing registry from a backup", "cadastro "+cmdRestore+" <backup.json>").WithTags("onboarding"),
	}
}
