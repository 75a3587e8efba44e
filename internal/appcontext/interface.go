// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cadastro"
	"github.com/agentstation/cadastro/internal/insights"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/cadastro/app implements it, providing dependency
// injection for commands while maintaining testability.
type Interface interface {
	// Registry returns the registry of this device, loading it lazily from
	// the data directory on first use.
	Registry(ctx context.Context) (cadastro.Registry, error)

	// Insights returns the insights client. It is disabled, not nil, when
	// no API key is configured.
	Insights(ctx context.Context) (*insights.Client, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// BackupDir returns the directory manual and automatic backups go to.
	BackupDir() string

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Now returns the current time, so reports are reproducible in tests.
	Now() time.Time

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
