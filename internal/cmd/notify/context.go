package notify

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro"
	"github.com/agentstation/cadastro/internal/cmd/hints"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Error types hints react to.
const (
	ErrorMode   = hints.ErrorMode
	ErrorFormat = hints.ErrorFormat
)

// ContextBuilder helps build hint contexts from command execution.
type ContextBuilder struct {
	context hints.Context
}

// NewContextBuilder creates a new context builder.
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{}
}

// FromCommand records the command name and its positional arguments.
func (cb *ContextBuilder) FromCommand(cmd *cobra.Command, args []string) *ContextBuilder {
	cb.context.Command = cmd.Name()
	if parent := cmd.Parent(); parent != nil && parent.Parent() != nil {
		// Subcommands such as "report health" hint as their parent.
		cb.context.Command = parent.Name()
	}
	cb.context.Args = args
	return cb
}

// FromRegistry records the device facts hints depend on.
func (cb *ContextBuilder) FromRegistry(reg cadastro.Registry) *ContextBuilder {
	if reg == nil {
		return cb
	}
	state := reg.State()
	cb.context.BackupDue = reg.BackupDue()
	cb.context.Residents = len(state.Residents)
	if state.Institution != nil {
		cb.context.Mode = state.Institution.SystemMode
	}
	return cb
}

// WithDryRun marks the operation as a preview.
func (cb *ContextBuilder) WithDryRun(dryRun bool) *ContextBuilder {
	cb.context.DryRun = dryRun
	return cb
}

// WithInsights records whether an insights backend is configured.
func (cb *ContextBuilder) WithInsights(enabled bool) *ContextBuilder {
	cb.context.InsightsEnabled = enabled
	return cb
}

// Build returns the constructed context.
func (cb *ContextBuilder) Build() hints.Context {
	return cb.context
}

// ErrorType classifies err for recovery hints.
func ErrorType(err error) string {
	var verr *errors.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr) && verr.Field == "systemMode":
		return ErrorMode
	case errors.IsFormatError(err), errors.IsParseError(err):
		return ErrorFormat
	}
	return ""
}
