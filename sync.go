package cadastro

import (
	"context"
	"path/filepath"

	"github.com/agentstation/cadastro/pkg/audit"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
	"github.com/agentstation/cadastro/pkg/reconciler"
	pkgsync "github.com/agentstation/cadastro/pkg/sync"
)

// Compile-time interface check to ensure proper implementation.
var _ Syncer = (*registry)(nil)

// Syncer merges station packages into the registry.
type Syncer interface {
	// Sync folds the station package at path into the local residents and
	// territories.
	Sync(ctx context.Context, path string, opts ...pkgsync.Option) (*pkgsync.Result, error)
}

// Sync reads a station package, sanitizes it and merges it into the
// current state. Nothing is saved when the package is rejected or the
// options ask for a dry run. On success the log gains two SYNC entries and
// the local data reaches the merged stage.
func (r *registry) Sync(ctx context.Context, path string, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(path); err != nil {
		return nil, err
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	name := filepath.Base(path)
	mode := r.mode()
	ctx = logging.WithMode(logging.WithFile(logging.WithOperation(ctx, "sync"), name), string(mode))
	logger := logging.FromContext(ctx)

	if !mode.IsServer() && !options.Force {
		return nil, &errors.ValidationError{
			Field:   "systemMode",
			Value:   mode,
			Message: "only the central server merges station packages",
		}
	}

	// Step 1: the package arrives on this device
	walk := &lifecycle{current: bundle.StateExported}
	if err := walk.advance(bundle.StateTransported); err != nil {
		return nil, err
	}
	incoming, err := bundle.DecodeFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := walk.advance(bundle.StateImported); err != nil {
		return nil, err
	}

	// Step 2: validate before sanitizing, which would fill in the residents
	if err := reconciler.Validate(incoming); err != nil {
		logger.Warn().Err(err).Msg("Incoming package rejected")
		return nil, err
	}
	incoming = r.sanitizer.Sanitize(incoming)

	var recOpts []reconciler.Option
	if options.MatchDigits {
		recOpts = append(recOpts, reconciler.WithKey(reconciler.CPFDigitsKey))
	}
	rec, err := reconciler.New(recOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	result := &pkgsync.Result{Package: name, DryRun: options.DryRun}

	// Step 3: merge, and save unless this is a dry run
	if options.DryRun {
		cur := r.State()
		if result.Result, err = rec.Merge(ctx, cur.Residents, cur.Territories, incoming); err != nil {
			return nil, errors.NewMergeError(name, "registry", err)
		}
		result.Lifecycle = walk.visited
		logger.Info().
			Int("new", result.New).
			Int("updated", result.Updated).
			Msg("Dry run, merge not saved")
		return result, nil
	}

	old, next, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		merged, err := rec.Merge(ctx, cur.Residents, cur.Territories, incoming)
		if err != nil {
			return nil, errors.NewMergeError(name, "registry", err)
		}
		result.Result = merged
		cur.Residents = merged.Residents
		cur.Territories = merged.Territories
		cur.Logs = audit.Prepend(cur.Logs, r.entry(bundle.ActionSync, bundle.TargetSystem, audit.MsgDatabaseMerged))
		cur.Logs = audit.Prepend(cur.Logs, r.entry(bundle.ActionSync, bundle.TargetSystem, audit.PackageMessage(name)))
		return cur, nil
	})
	if err != nil {
		return nil, err
	}
	if err := walk.advance(bundle.StateMerged); err != nil {
		return nil, err
	}
	result.Lifecycle = walk.visited
	result.Saved = true
	r.setLifecycle(ctx, bundle.StateMerged)

	r.hooks.triggerMerge(old.Residents, next.Residents)

	logger.Info().
		Int("new", result.New).
		Int("updated", result.Updated).
		Int("territories_added", result.TerritoriesAdded).
		Int("territories_skipped", result.TerritoriesSkipped).
		Msg("Sync completed")

	return result, nil
}

// mode returns the configured system mode.
func (r *registry) mode() bundle.SystemMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Institution.SystemMode
}

// lifecycle walks a package through the bundle states.
type lifecycle struct {
	current bundle.State
	visited []bundle.State
}

func (l *lifecycle) advance(to bundle.State) error {
	if !l.current.CanTransition(to) {
		return &errors.ValidationError{
			Field:   "lifecycle",
			Value:   to.String(),
			Message: "cannot move from " + l.current.String(),
		}
	}
	if len(l.visited) == 0 {
		l.visited = append(l.visited, l.current)
	}
	l.current = to
	l.visited = append(l.visited, to)
	return nil
}
