package reconciler

import (
	"fmt"

	"github.com/agentstation/cadastro/pkg/bundle"
)

// Result is the outcome of a merge.
type Result struct {
	Residents   []bundle.Resident
	Territories []bundle.Territory

	// New and Updated count incoming residents appended and overlaid.
	New     int
	Updated int

	TerritoriesAdded   int
	TerritoriesSkipped int

	// Changes lists each overlaid resident with the fields that took a new
	// value. Fields is empty when the incoming record matched exactly.
	Changes []Change
}

// Change describes one resident overlay.
type Change struct {
	Key    string
	Name   string
	Fields []string
}

// HasChanges reports whether the merge added or modified anything.
func (r *Result) HasChanges() bool {
	if r.New > 0 || r.TerritoriesAdded > 0 {
		return true
	}
	for _, c := range r.Changes {
		if len(c.Fields) > 0 {
			return true
		}
	}
	return false
}

// Summary returns the operator-facing outcome of the merge.
func (r *Result) Summary() string {
	return fmt.Sprintf("Sync completed! %d new records and %d updates applied.", r.New, r.Updated)
}
