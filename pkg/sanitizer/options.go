package sanitizer

import (
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/identity"
)

type options struct {
	clock identity.Clock
	ids   identity.Generator
}

func defaultOptions() *options {
	return &options{
		clock: identity.SystemClock,
		ids:   identity.Default(),
	}
}

// Option configures a Sanitizer.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithClock sets the source of the default timestamp and birth date.
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

// WithIDGenerator sets the generator used for absent identifiers and
// usernames.
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
