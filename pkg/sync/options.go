// Package sync provides options and results for folding a station package
// into the central server's registry.
package sync

import (
	"time"

	"github.com/agentstation/cadastro/pkg/errors"
)

// Options controls a single Registry.Sync call.
type Options struct {
	DryRun      bool          // Compute the merge without saving it
	Timeout     time.Duration // Bound on reading and merging the package
	MatchDigits bool          // Match residents on cpf digits instead of the raw value
	Force       bool          // Allow a sync on a collection station
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks the options against the package path.
func (s *Options) Validate(path string) error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	if path == "" {
		return &errors.ValidationError{
			Field:   "path",
			Message: "a package file is required",
		}
	}
	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithMatchDigits matches residents on the digits of their cpf, so
// "123.456.789-09" and "12345678909" are the same person.
func WithMatchDigits(enabled bool) Option {
	return func(opts *Options) {
		opts.MatchDigits = enabled
	}
}

// WithForce allows a sync on a device that is not the central server.
func WithForce(force bool) Option {
	return func(opts *Options) {
		opts.Force = force
	}
}
