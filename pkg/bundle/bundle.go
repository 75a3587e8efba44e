// Package bundle defines the registry snapshot exchanged between collection
// stations and the central server, together with its file codec.
//
// A Bundle is the sole argument and return type of both core operations:
// sanitizer.Sanitize normalizes one, and reconciler.Merge folds an incoming
// one into local collections. Absent values are represented by Go zero
// values (empty strings, nil slices, nil pointers), so "absent" and "empty"
// are the same thing for string fields.
package bundle

// Bundle is a complete serializable snapshot of registry state.
type Bundle struct {
	Version     string        `json:"version" yaml:"version"`
	Timestamp   string        `json:"timestamp" yaml:"timestamp"`
	Institution *Institution  `json:"institution" yaml:"institution"`
	Agents      []Agent       `json:"agents" yaml:"agents"`
	Residents   []Resident    `json:"residents" yaml:"residents"`
	Logs        []AuditLog    `json:"logs" yaml:"logs"`
	Territories []Territory   `json:"territories" yaml:"territories"`
	Config      *BackupConfig `json:"config,omitempty" yaml:"config,omitempty"`
}

// Clone returns a deep copy of b. Nil slices stay nil so absence survives
// the copy.
func (b *Bundle) Clone() *Bundle {
	if b == nil {
		return nil
	}
	out := *b
	if b.Institution != nil {
		inst := *b.Institution
		out.Institution = &inst
	}
	if b.Config != nil {
		cfg := *b.Config
		out.Config = &cfg
	}
	out.Agents = cloneSlice(b.Agents)
	out.Logs = cloneSlice(b.Logs)
	out.Territories = cloneSlice(b.Territories)
	out.Residents = CloneResidents(b.Residents)
	return &out
}

// CloneResidents deep copies a resident collection.
func CloneResidents(in []Resident) []Resident {
	if in == nil {
		return nil
	}
	out := make([]Resident, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// CloneTerritories copies a territory collection.
func CloneTerritories(in []Territory) []Territory {
	return cloneSlice(in)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
