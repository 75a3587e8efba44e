package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/reconciler"
)

// Result represents the complete result of a sync operation.
type Result struct {
	*reconciler.Result

	// Package is the base name of the station file that was merged.
	Package string

	// Lifecycle lists the bundle states the package passed through.
	Lifecycle []bundle.State

	DryRun bool // Whether this was a dry run
	Saved  bool // Whether the merged state was persisted
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	if sr.Result == nil {
		return "No changes detected"
	}
	summary := sr.Result.Summary()
	if sr.DryRun {
		summary += " (Dry run)"
	}
	return summary
}

// Details lists one line per overlaid resident that changed.
func (sr *Result) Details() []string {
	if sr.Result == nil {
		return nil
	}
	var lines []string
	for _, c := range sr.Changes {
		if len(c.Fields) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %s", c.Name, c.Key, strings.Join(c.Fields, ", ")))
	}
	return lines
}
