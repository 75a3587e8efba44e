package appcontext

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/cadastro"
	"github.com/agentstation/cadastro/internal/insights"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	RegistryFunc     func(context.Context) (cadastro.Registry, error)
	InsightsFunc     func(context.Context) (*insights.Client, error)
	LoggerFunc       func() *zerolog.Logger
	BackupDirFunc    func() string
	OutputFormatFunc func() string
	NowFunc          func() time.Time
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Registry returns a registry using the mock function or nil.
func (m *Mock) Registry(ctx context.Context) (cadastro.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc(ctx)
	}
	return nil, nil
}

// Insights returns an insights client using the mock function or a
// disabled client.
func (m *Mock) Insights(ctx context.Context) (*insights.Client, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx)
	}
	return insights.New()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// BackupDir returns the directory using the mock function or ".".
func (m *Mock) BackupDir() string {
	if m.BackupDirFunc != nil {
		return m.BackupDirFunc()
	}
	return "."
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Now returns the time using the mock function or the zero time.
func (m *Mock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Time{}
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
