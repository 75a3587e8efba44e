// Package audit records state-changing actions in the registry log.
//
// The log is stored most-recent-first and never grows past
// constants.MaxAuditLogs entries; the oldest entries fall off the end.
package audit

import (
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/identity"
)

// Actor fields recorded when no agent is signed in.
const (
	SystemAgentID   = "setup"
	SystemAgentName = "System"
)

// Messages for registry-level events.
const (
	MsgDatabaseMerged   = "Database merged"
	MsgRestoreApplied   = "Full restore applied"
	MsgPackageGenerated = "Collection package generated for the server"
	MsgManualBackup     = "Manual safety export"
)

// RestoreMessage names the file a restore was read from.
func RestoreMessage(file string) string {
	return "Restore completed: " + file
}

// PackageMessage names the station package a sync consumed.
func PackageMessage(file string) string {
	return "Package " + file + " processed"
}

// Recorder creates audit entries.
type Recorder struct {
	clock identity.Clock
	ids   identity.Generator
}

// NewRecorder creates a Recorder. Nil collaborators fall back to the system
// clock and random identifiers.
func NewRecorder(clock identity.Clock, ids identity.Generator) *Recorder {
	if clock == nil {
		clock = identity.SystemClock
	}
	if ids == nil {
		ids = identity.Default()
	}
	return &Recorder{clock: clock, ids: ids}
}

// Entry returns a new log entry for an action performed by actor, or by the
// system when actor is nil.
func (r *Recorder) Entry(actor *bundle.Agent, action bundle.Action, target bundle.TargetType, name string) bundle.AuditLog {
	entry := bundle.AuditLog{
		ID:         r.ids.NewID(),
		AgentID:    SystemAgentID,
		AgentName:  SystemAgentName,
		Action:     action,
		TargetType: target,
		TargetName: name,
		Timestamp:  identity.Timestamp(r.clock()),
	}
	if actor != nil {
		if actor.ID != "" {
			entry.AgentID = actor.ID
		}
		if actor.Name != "" {
			entry.AgentName = actor.Name
		}
	}
	return entry
}

// Prepend returns a new log with entry first, capped at MaxAuditLogs.
// logs is not modified.
func Prepend(logs []bundle.AuditLog, entry bundle.AuditLog) []bundle.AuditLog {
	n := len(logs) + 1
	if n > constants.MaxAuditLogs {
		n = constants.MaxAuditLogs
	}
	out := make([]bundle.AuditLog, 0, n)
	out = append(out, entry)
	return append(out, logs[:n-1]...)
}

// Filter returns the entries matching action, keeping order. An empty action
// matches everything.
func Filter(logs []bundle.AuditLog, action bundle.Action) []bundle.AuditLog {
	out := make([]bundle.AuditLog, 0, len(logs))
	for _, l := range logs {
		if action == "" || l.Action == action {
			out = append(out, l)
		}
	}
	return out
}
