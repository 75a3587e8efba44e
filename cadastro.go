// Package cadastro provides the main entry point for the resident registry.
// A Registry owns the state of one device, either a collection station or
// the central server, and runs the flows that move bundles between them.
//
// Registry wraps the pure sanitizer and reconciler with:
//   - Persistence through an internal state store
//   - Audit log entries for every state-changing flow
//   - Thread-safe state access with copy-on-read semantics
//   - Event hooks for resident changes
//   - Optional automatic backups
//
// Example usage:
//
//	reg, err := cadastro.New(ctx, cadastro.WithDataDir("/var/lib/cadastro"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.AutoBackupsOff()
//
//	reg.OnResidentAdded(func(r bundle.Resident) {
//	    log.Printf("New resident: %s", r.Name)
//	})
//
//	// Station: write the package for the server
//	path, err := reg.ExportForServer(ctx, "./outbox")
//
//	// Server: fold a station package in
//	result, err := reg.Sync(ctx, "collection_station_north_2024-05-01.json")
//	fmt.Println(result.Summary())
package cadastro

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cadastro/pkg/audit"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
	"github.com/agentstation/cadastro/pkg/sanitizer"
)

// Compile-time interface check to ensure proper implementation.
var _ Registry = (*registry)(nil)

// Snapshot provides copy-on-read access to the registry state.
type Snapshot interface {
	// State returns a copy of the current state.
	State() *bundle.Bundle

	// Lifecycle returns where the local data stands in the bundle lifecycle.
	Lifecycle() bundle.State
}

// Registry manages the state of one device with hooks and backups.
type Registry interface {

	// Snapshot provides copy-on-read access to the state
	Snapshot

	// Syncer merges station packages into the server state
	Syncer

	// Persistence handles backups, restores and station exports
	Persistence

	// Journal records audit entries and device settings
	Journal

	// AutoBackuper provides access to automatic backup controls
	AutoBackuper

	// Hooks provides access to event callback registration
	Hooks
}

// registry is the internal implementation of the Registry interface.
type registry struct {

	// options are the configured options for the registry
	options *options

	// state is the sanitized working state
	mu        sync.RWMutex
	state     *bundle.Bundle
	lifecycle bundle.State

	sanitizer *sanitizer.Sanitizer
	recorder  *audit.Recorder

	// auto backup state
	backupTicker *time.Ticker
	stopCh       chan struct{}
	backupCancel context.CancelFunc
	hooks        *hooks

	// logger carries the caller's fields into background work
	logger zerolog.Logger
}

// New creates a Registry from the state held in the configured store. The
// loaded state is sanitized, and written back when sanitizing changed it.
func New(ctx context.Context, opts ...Option) (Registry, error) {
	options, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	san, err := sanitizer.New(
		sanitizer.WithClock(options.clock),
		sanitizer.WithIDGenerator(options.ids),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "sanitizer", "", err)
	}

	r := &registry{
		options:   options,
		lifecycle: bundle.StateCollected,
		sanitizer: san,
		recorder:  audit.NewRecorder(options.clock, options.ids),
		stopCh:    make(chan struct{}),
		hooks:     newHooks(),
	}

	logger := logging.FromContext(ctx)
	loaded, err := options.store.Load(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "state", "", err)
	}

	r.state = san.Sanitize(loaded)
	if r.state.Config == nil {
		r.state.Config = bundle.DefaultBackupConfig()
	}
	ctx = logging.WithMode(ctx, string(r.state.Institution.SystemMode))
	logger = logging.FromContext(ctx)
	r.logger = *logger
	logger.Debug().
		Int("residents", len(r.state.Residents)).
		Int("territories", len(r.state.Territories)).
		Int("agents", len(r.state.Agents)).
		Msg("State loaded")

	if changed(loaded, r.state) {
		switch err := options.store.Save(ctx, r.state); {
		case errors.Is(err, errors.ErrReadOnly):
			logger.Debug().Msg("Read-only store, sanitized state kept in memory")
		case err != nil:
			return nil, errors.WrapResource("save", "state", "", err)
		default:
			logger.Info().Msg("Stored state repaired")
		}
	}

	if options.autoBackupsEnabled {
		if err := r.AutoBackupsOn(); err != nil {
			return nil, errors.WrapResource("start", "auto-backups", "", err)
		}
	}

	return r, nil
}

// State returns a copy of the current state.
func (r *registry) State() *bundle.Bundle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Lifecycle returns the lifecycle stage of the local data.
func (r *registry) Lifecycle() bundle.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lifecycle
}

// update computes the next state from a copy of the current one and swaps
// it in only after the store accepted it. The previous and new states are
// returned so callers can fire hooks once the lock is released.
func (r *registry) update(ctx context.Context, fn func(cur *bundle.Bundle) (*bundle.Bundle, error)) (old, next *bundle.Bundle, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old = r.state
	if next, err = fn(old.Clone()); err != nil {
		return nil, nil, err
	}
	if err = r.options.store.Save(ctx, next); err != nil {
		return nil, nil, errors.WrapResource("save", "state", "", err)
	}
	r.state = next
	return old, next, nil
}

// setLifecycle moves the local data to the given stage.
func (r *registry) setLifecycle(ctx context.Context, to bundle.State) {
	r.mu.Lock()
	from := r.lifecycle
	r.lifecycle = to
	r.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Stringer("from", from).
		Stringer("to", to).
		Msg("Lifecycle changed")
}

// entry creates an audit entry attributed to the configured actor.
func (r *registry) entry(action bundle.Action, target bundle.TargetType, name string) bundle.AuditLog {
	return r.recorder.Entry(r.options.actor, action, target, name)
}

// changed reports whether sanitizing altered the stored collections.
func changed(loaded, sanitized *bundle.Bundle) bool {
	a, b := loaded.Clone(), sanitized.Clone()
	a.Version, a.Timestamp, a.Config = "", "", nil
	b.Version, b.Timestamp, b.Config = "", "", nil
	return !reflect.DeepEqual(a, b)
}
