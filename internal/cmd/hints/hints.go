// Package hints provides actionable operator guidance after CLI operations.
package hints

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/cadastro/internal/cmd/emoji"
	"github.com/agentstation/cadastro/pkg/bundle"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string   // Human-readable guidance message
	Command string   // Optional specific command to run
	Tags    []string // For context-aware filtering
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// WithTags adds tags to the hint for context-aware filtering.
func (h *Hint) WithTags(tags ...string) *Hint {
	h.Tags = append(h.Tags, tags...)
	return h
}

// HasTag checks if the hint has a specific tag.
func (h *Hint) HasTag(tag string) bool {
	return slices.Contains(h.Tags, tag)
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	parts := []string{fmt.Sprintf("%s %s", emoji.Hint, h.Message)}
	if h.Command != "" {
		parts = append(parts, fmt.Sprintf("   Run: %s", h.Command))
	}
	return strings.Join(parts, "\n")
}

// Context describes the operation that just ran and the device it ran on.
type Context struct {
	Command   string   // Command being executed
	Args      []string // Command arguments
	Succeeded bool     // Whether the operation succeeded
	ErrorType string   // Kind of failure, e.g. "mode" or "format"

	DryRun          bool
	BackupDue       bool
	Mode            bundle.SystemMode
	Residents       int
	InsightsEnabled bool
}

// Provider generates contextual hints based on the current context.
type Provider interface {
	Hints(ctx Context) []*Hint
	Name() string
}

// ProviderFunc is an adapter to allow functions to be used as Providers.
type ProviderFunc func(Context) []*Hint

// Hints calls the function.
func (f ProviderFunc) Hints(ctx Context) []*Hint {
	return f(ctx)
}

// Name returns the function name (generic).
func (f ProviderFunc) Name() string {
	return "func"
}

// Registry manages hint providers and generates contextual hints.
type Registry struct {
	providers []Provider
	config    RegistryConfig
}

// RegistryConfig configures hint generation behavior.
type RegistryConfig struct {
	MaxHints    int      // Maximum number of hints to return
	ExcludeTags []string // Exclude hints with these tags
	Enabled     bool     // Whether hints are enabled
}

// NewRegistry creates a new hint registry.
func NewRegistry() *Registry {
	return &Registry{
		config: RegistryConfig{
			MaxHints: 3,
			Enabled:  true,
		},
	}
}

// WithConfig sets the registry configuration.
func (r *Registry) WithConfig(config RegistryConfig) *Registry {
	r.config = config
	return r
}

// Register adds a hint provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers = append(r.providers, provider)
}

// RegisterFunc registers a function as a hint provider.
func (r *Registry) RegisterFunc(name string, fn func(Context) []*Hint) {
	r.Register(&namedProvider{name: name, fn: ProviderFunc(fn)})
}

// Hints generates hints for the given context in provider order.
func (r *Registry) Hints(ctx Context) []*Hint {
	if !r.config.Enabled {
		return nil
	}

	var out []*Hint
	for _, provider := range r.providers {
		for _, hint := range provider.Hints(ctx) {
			if r.excluded(hint) {
				continue
			}
			out = append(out, hint)
		}
	}

	if r.config.MaxHints > 0 && len(out) > r.config.MaxHints {
		out = out[:r.config.MaxHints]
	}
	return out
}

func (r *Registry) excluded(hint *Hint) bool {
	for _, tag := range r.config.ExcludeTags {
		if hint.HasTag(tag) {
			return true
		}
	}
	return false
}

// namedProvider wraps a ProviderFunc with a name.
type namedProvider struct {
	name string
	fn   ProviderFunc
}

func (p *namedProvider) Hints(ctx Context) []*Hint {
	return p.fn.Hints(ctx)
}

func (p *namedProvider) Name() string {
	return p.name
}
