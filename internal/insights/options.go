package insights

import "github.com/agentstation/cadastro/pkg/errors"

// defaultSample is how many residents are described to the model.
const defaultSample = 15

type options struct {
	backend  Backend
	sample   int
	language string
}

func defaultOptions() *options {
	return &options{
		sample:   defaultSample,
		language: "Brazilian Portuguese",
	}
}

// Option configures a Client.
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

// WithBackend sets the model backend. A nil backend disables the client.
func WithBackend(b Backend) Option {
	return func(o *options) error {
		o.backend = b
		return nil
	}
}

// WithSample sets how many residents are included in the prompt.
func WithSample(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.NewValidationError("sample", n, "must be positive")
		}
		o.sample = n
		return nil
	}
}

// WithLanguage sets the language the model answers in.
func WithLanguage(lang string) Option {
	return func(o *options) error {
		if lang == "" {
			return errors.NewValidationError("language", lang, "cannot be empty")
		}
		o.language = lang
		return nil
	}
}
