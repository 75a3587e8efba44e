package cadastro

import (
	"context"

	"github.com/agentstation/cadastro/pkg/audit"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Journal = (*registry)(nil)

// Journal records audit entries and device settings.
type Journal interface {
	// AddLog records an action in the audit log.
	AddLog(ctx context.Context, action bundle.Action, target bundle.TargetType, name string) error

	// Logs returns the audit log filtered by action; an empty action
	// returns every entry.
	Logs(action bundle.Action) []bundle.AuditLog

	// SetConfig replaces the backup settings of the device.
	SetConfig(ctx context.Context, cfg bundle.BackupConfig) error

	// BackupDue reports whether the backup reminder should be shown.
	BackupDue() bool
}

// AddLog prepends an entry attributed to the configured actor.
func (r *registry) AddLog(ctx context.Context, action bundle.Action, target bundle.TargetType, name string) error {
	if action == "" {
		return &errors.ValidationError{Field: "action", Message: "cannot be empty"}
	}
	_, _, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		cur.Logs = audit.Prepend(cur.Logs, r.entry(action, target, name))
		return cur, nil
	})
	return err
}

// Logs returns a filtered copy of the audit log, most recent first.
func (r *registry) Logs(action bundle.Action) []bundle.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return audit.Filter(r.state.Logs, action)
}

// SetConfig stores new backup settings. An unknown frequency is rejected.
func (r *registry) SetConfig(ctx context.Context, cfg bundle.BackupConfig) error {
	switch cfg.Frequency {
	case bundle.FrequencyDaily, bundle.FrequencyWeekly, bundle.FrequencyMonthly:
	default:
		return &errors.ValidationError{
			Field:   "frequency",
			Value:   cfg.Frequency,
			Message: "must be daily, weekly or monthly",
		}
	}
	_, _, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		cur.Config = &cfg
		return cur, nil
	})
	return err
}

// BackupDue reports whether a backup is due at the current time.
func (r *registry) BackupDue() bool {
	r.mu.RLock()
	cfg := r.state.Config
	r.mu.RUnlock()
	return cfg.Due(r.options.clock())
}
