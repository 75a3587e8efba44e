package bundle

// State is a stage in the life of a bundle as it travels from a station
// to the central server.
type State int

// Bundle lifecycle states. A station never moves its own data past
// Exported; only the server performs Imported to Merged.
const (
	StateCollected State = iota
	StateExported
	StateTransported
	StateImported
	StateMerged
)

var stateNames = map[State]string{
	StateCollected:   "collected",
	StateExported:    "exported",
	StateTransported: "transported",
	StateImported:    "imported",
	StateMerged:      "merged",
}

// String returns the lowercase name of s.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the state that follows s. Merged data becomes the new
// collected baseline.
func (s State) Next() State {
	if s == StateMerged {
		return StateCollected
	}
	return s + 1
}

// CanTransition reports whether moving from s to to follows the lifecycle.
// Transported is outside the system, so Exported may go straight to
// Imported when a file is picked up on the same device.
func (s State) CanTransition(to State) bool {
	if s.Next() == to {
		return true
	}
	return s == StateExported && to == StateImported
}

// Terminal reports whether a device in mode stops at s for its own data.
func (s State) Terminal(mode SystemMode) bool {
	return !mode.IsServer() && s == StateExported
}
