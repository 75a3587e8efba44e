// Package app provides the application context and dependency management
// for the cadastro CLI. It centralizes configuration, logging and the
// lazily opened registry so commands only see appcontext.Interface.
package app

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cadastro"
	"github.com/agentstation/cadastro/internal/appcontext"
	"github.com/agentstation/cadastro/internal/insights"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/identity"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the cadastro application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	clock  identity.Clock

	// Registry instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry cadastro.Registry
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		clock:   identity.SystemClock,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// BackupDir returns the configured backup directory, which defaults to a
// backups folder inside the data directory.
func (a *App) BackupDir() string {
	if a.config.BackupDir != "" {
		return a.config.BackupDir
	}
	return filepath.Join(a.config.DataDir, "backups")
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Now returns the current time from the app clock.
func (a *App) Now() time.Time {
	return a.clock()
}

// Registry returns the registry of this device, opening it lazily.
// This is thread-safe and ensures only one instance is created.
func (a *App) Registry(ctx context.Context) (cadastro.Registry, error) {
	a.mu.RLock()
	if a.registry != nil {
		reg := a.registry
		a.mu.RUnlock()
		return reg, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.registry != nil {
		return a.registry, nil
	}

	ctx = logging.WithLogger(ctx, a.logger)
	reg, err := cadastro.New(ctx, a.buildRegistryOptions()...)
	if err != nil {
		return nil, errors.WrapResource("open", "registry", a.config.DataDir, err)
	}

	a.registry = reg
	return reg, nil
}

// Insights returns an insights client. Without an API key the client is
// disabled and generates nothing.
func (a *App) Insights(ctx context.Context) (*insights.Client, error) {
	if a.config.InsightsAPIKey == "" {
		return insights.New()
	}
	backend, err := insights.NewGemini(ctx, a.config.InsightsAPIKey, a.config.InsightsModel)
	if err != nil {
		return nil, err
	}
	return insights.New(insights.WithBackend(backend))
}

// Shutdown performs graceful shutdown of the application.
// It stops any running background tasks and cleans up resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	reg := a.registry
	a.mu.RUnlock()

	if reg != nil {
		if err := reg.AutoBackupsOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-backups during shutdown")
		}
	}

	return nil
}

// buildRegistryOptions constructs registry options from the app configuration.
func (a *App) buildRegistryOptions() []cadastro.Option {
	opts := []cadastro.Option{
		cadastro.WithDataDir(a.config.DataDir),
		cadastro.WithClock(a.clock),
	}

	if a.config.AutoBackupsEnabled {
		opts = append(opts, cadastro.WithAutoBackups(true, a.BackupDir()))
		if a.config.AutoBackupInterval > 0 {
			opts = append(opts, cadastro.WithAutoBackupInterval(a.config.AutoBackupInterval))
		}
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClock sets the clock reports and filenames are stamped with.
func WithClock(clock identity.Clock) Option {
	return func(a *App) error {
		if clock == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		a.clock = clock
		return nil
	}
}

// WithRegistry sets a custom registry instance (useful for testing).
func WithRegistry(reg cadastro.Registry) Option {
	return func(a *App) error {
		a.registry = reg
		return nil
	}
}
