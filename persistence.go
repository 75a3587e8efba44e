package cadastro

import (
	"context"
	"path/filepath"

	"github.com/agentstation/cadastro/pkg/audit"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
	"github.com/agentstation/cadastro/pkg/logging"
	"github.com/agentstation/cadastro/pkg/save"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*registry)(nil)

// Persistence handles bundle files written and read by the registry.
type Persistence interface {
	// Restore replaces all state with the backup at path.
	Restore(ctx context.Context, path string) error

	// Backup writes the full state to dir and returns the file path.
	Backup(ctx context.Context, dir string) (string, error)

	// ExportForServer writes the station package to dir and returns the
	// file path.
	ExportForServer(ctx context.Context, dir string) (string, error)
}

// Restore reads, sanitizes and installs the backup at path. Every
// collection is replaced, the log included; device settings are kept
// unless the backup carries its own.
func (r *registry) Restore(ctx context.Context, path string) error {
	name := filepath.Base(path)
	ctx = logging.WithFile(logging.WithOperation(ctx, "restore"), name)
	logger := logging.FromContext(ctx)

	incoming, err := bundle.DecodeFile(ctx, path)
	if err != nil {
		return err
	}
	restored := r.sanitizer.Sanitize(incoming)

	old, next, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		next := restored.Clone()
		if next.Config == nil {
			next.Config = cur.Config
		}
		next.Logs = audit.Prepend(next.Logs, r.entry(bundle.ActionBackup, bundle.TargetSystem, audit.MsgRestoreApplied))
		next.Logs = audit.Prepend(next.Logs, r.entry(bundle.ActionBackup, bundle.TargetSystem, audit.RestoreMessage(name)))
		return next, nil
	})
	if err != nil {
		return err
	}
	r.setLifecycle(ctx, bundle.StateCollected)
	r.hooks.triggerResidentsUpdate(old.Residents, next.Residents)

	logger.Info().
		Int("residents", len(next.Residents)).
		Int("agents", len(next.Agents)).
		Int("territories", len(next.Territories)).
		Msg("Restore completed")
	return nil
}

// Backup writes a sanitized copy of the full state, agents and settings
// included, then records the backup date. The file is readable by its owner
// only since it carries agent credentials.
func (r *registry) Backup(ctx context.Context, dir string) (string, error) {
	ctx = logging.WithOperation(ctx, "backup")
	now := r.options.clock()
	path := filepath.Join(dir, bundle.BackupName(now))

	_, _, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		snapshot := cur.Clone()
		snapshot.Version, snapshot.Timestamp = "", ""
		if err := r.write(r.sanitizer.Sanitize(snapshot), path, true); err != nil {
			return nil, err
		}

		cfg := *bundle.DefaultBackupConfig()
		if cur.Config != nil {
			cfg = *cur.Config
		}
		cfg.LastBackupDate = identity.Timestamp(now)
		cur.Config = &cfg
		cur.Logs = audit.Prepend(cur.Logs, r.entry(bundle.ActionBackup, bundle.TargetSystem, audit.MsgManualBackup))
		return cur, nil
	})
	if err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info().Str("file", path).Msg("Backup written")
	return path, nil
}

// ExportForServer writes the package a station hands to the server: the
// institution, residents and territories with a fresh timestamp. Agents,
// the log and device settings never leave the station.
func (r *registry) ExportForServer(ctx context.Context, dir string) (string, error) {
	ctx = logging.WithOperation(ctx, "export")
	now := r.options.clock()

	var path string
	_, _, err := r.update(ctx, func(cur *bundle.Bundle) (*bundle.Bundle, error) {
		pkg := r.sanitizer.Sanitize(&bundle.Bundle{
			Timestamp:   identity.Timestamp(now),
			Institution: cur.Institution,
			Residents:   cur.Residents,
			Territories: cur.Territories,
		})
		path = filepath.Join(dir, bundle.StationExportName(pkg.Institution.City, now))
		if err := r.write(pkg, path, false); err != nil {
			return nil, err
		}

		cur.Logs = audit.Prepend(cur.Logs, r.entry(bundle.ActionSync, bundle.TargetSystem, audit.MsgPackageGenerated))
		return cur, nil
	})
	if err != nil {
		return "", err
	}
	r.setLifecycle(ctx, bundle.StateExported)

	logging.FromContext(ctx).Info().Str("file", path).Msg("Collection package generated")
	return path, nil
}

// write serializes b as JSON to path.
func (r *registry) write(b *bundle.Bundle, path string, secure bool) error {
	return bundle.Write(b,
		save.WithPath(path),
		save.WithFormat(save.FormatJSON),
		save.WithSecure(secure),
	)
}
