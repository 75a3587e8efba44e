package cadastro

import (
	"time"

	"github.com/agentstation/cadastro/internal/store"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/identity"
)

// options holds the configuration of a Registry.
type options struct {
	store store.Store
	clock identity.Clock
	ids   identity.Generator

	// actor is recorded on audit entries; nil means the system
	actor *bundle.Agent

	// auto backups
	backupDir          string
	autoBackupsEnabled bool
	autoBackupInterval time.Duration
}

func defaults() *options {
	return &options{
		store:              store.NewMemory(nil),
		clock:              identity.SystemClock,
		ids:                identity.Default(),
		autoBackupInterval: constants.DefaultBackupCheckInterval,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Registry instance.
type Option func(*options) error

// WithStore configures where state is loaded from and saved to.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		if s == nil {
			return &errors.ValidationError{
				Field:   "store",
				Message: "cannot be nil",
			}
		}
		o.store = s
		return nil
	}
}

// WithDataDir keeps state as JSON files in dir.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "dataDir",
				Message: "cannot be empty",
			}
		}
		o.store = store.NewFiles(dir)
		return nil
	}
}

// WithClock configures the time source for timestamps and file names.
func WithClock(clock identity.Clock) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = clock
		return nil
	}
}

// WithIDGenerator configures the generator for new identifiers.
func WithIDGenerator(ids identity.Generator) Option {
	return func(o *options) error {
		if ids == nil {
			return &errors.ValidationError{
				Field:   "ids",
				Message: "cannot be nil",
			}
		}
		o.ids = ids
		return nil
	}
}

// WithActor attributes audit entries to agent instead of the system.
func WithActor(agent bundle.Agent) Option {
	return func(o *options) error {
		o.actor = &agent
		return nil
	}
}

// WithAutoBackups configures whether automatic backups are enabled.
// Backups are written to dir.
func WithAutoBackups(enabled bool, dir string) Option {
	return func(o *options) error {
		o.autoBackupsEnabled = enabled
		o.backupDir = dir
		return nil
	}
}

// WithAutoBackupInterval configures how often automatic backups check
// whether a backup is due.
func WithAutoBackupInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoBackupInterval = interval
		return nil
	}
}
