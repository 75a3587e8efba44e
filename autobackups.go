package cadastro

import (
	"context"
	"time"

	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoBackuper = (*registry)(nil)

// AutoBackuper provides controls for automatic backups.
type AutoBackuper interface {
	// AutoBackupsOn begins automatic backups if configured
	AutoBackupsOn() error

	// AutoBackupsOff stops automatic backups
	AutoBackupsOff() error
}

// AutoBackupsOn starts a background check that writes a backup whenever
// automatic backups are enabled and the frequency window has passed.
func (r *registry) AutoBackupsOn() error {
	if r.options.autoBackupInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoBackupInterval",
			Value:   r.options.autoBackupInterval,
			Message: "backup interval must be positive",
		}
	}
	if r.options.backupDir == "" {
		return &errors.ValidationError{
			Field:   "backupDir",
			Message: "a backup directory is required",
		}
	}

	// Stop any existing auto-backups to prevent resource leaks
	if err := r.AutoBackupsOff(); err != nil {
		return err
	}

	// Recreate stopCh since it was closed in AutoBackupsOff
	r.stopCh = make(chan struct{})
	r.backupTicker = time.NewTicker(r.options.autoBackupInterval)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.WithOperation(logging.WithLogger(ctx, &r.logger), "auto-backup")
	r.backupCancel = cancel

	go func(parentCtx context.Context, ticker *time.Ticker, stopCh chan struct{}) {
		for {
			select {
			case <-ticker.C:
				backupCtx, backupCancel := context.WithTimeout(parentCtx, constants.BackupContextTimeout)
				err := r.backupIfDue(backupCtx)
				backupCancel()

				// A slow tick is retried on the next one; only shutdown ends the loop.
				if err != nil && parentCtx.Err() == nil {
					logging.FromContext(parentCtx).Error().Err(err).Msg("Auto-backup failed")
				}
			case <-parentCtx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}(ctx, r.backupTicker, r.stopCh)

	return nil
}

// AutoBackupsOff stops automatic backups.
func (r *registry) AutoBackupsOff() error {
	if r.backupTicker != nil {
		r.backupTicker.Stop()
		r.backupTicker = nil
	}
	if r.backupCancel != nil {
		r.backupCancel()
		r.backupCancel = nil
	}
	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}
	return nil
}

// backupIfDue writes a backup when automatic backups are enabled and the
// frequency window has passed, whether or not reminders are on.
func (r *registry) backupIfDue(ctx context.Context) error {
	r.mu.RLock()
	cfg := r.state.Config
	r.mu.RUnlock()

	if !cfg.AutoBackupDue(r.options.clock()) {
		return nil
	}
	_, err := r.Backup(ctx, r.options.backupDir)
	return err
}
