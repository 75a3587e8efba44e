package reconciler

import (
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/identity"
)

// KeyFunc returns the identity under which residents are matched.
type KeyFunc func(bundle.Resident) string

// CPFKey matches residents on the cpf field exactly as entered.
func CPFKey(r bundle.Resident) string {
	return r.CPF
}

// CPFDigitsKey matches residents on the digits of their cpf, so
// "529.982.247-25" and "52998224725" are the same person. Values without
// digits fall back to the raw field.
func CPFDigitsKey(r bundle.Resident) string {
	if d := identity.Digits(r.CPF); d != "" {
		return d
	}
	return r.CPF
}

type options struct {
	key KeyFunc
}

func defaultOptions() *options {
	return &options{key: CPFKey}
}

// Option is a function that configures a Reconciler.
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

// WithKey sets the resident identity function.
func WithKey(key KeyFunc) Option {
	return func(o *options) error {
		if key == nil {
			return &errors.ValidationError{
				Field:   "key",
				Message: "cannot be nil",
			}
		}
		o.key = key
		return nil
	}
}
