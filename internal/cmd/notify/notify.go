// Package notify provides a unified API for alerts and hints in the CLI.
package notify

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentstation/cadastro/internal/cmd/alerts"
	"github.com/agentstation/cadastro/internal/cmd/globals"
	"github.com/agentstation/cadastro/internal/cmd/hints"
	"github.com/agentstation/cadastro/internal/cmd/output"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Notifier sends alerts and displays hints.
type Notifier struct {
	alertWriter  alerts.Writer
	hintRegistry *hints.Registry
	config       Config
}

// Config controls notification behavior.
type Config struct {
	OutputFormat string    // "table", "json", "yaml"; empty detects
	ShowHints    bool      // Whether to show hints
	ShowAlerts   bool      // Whether to show alerts
	MaxHints     int       // Maximum number of hints to show
	AlertWriter  io.Writer // Where to write alerts (default: stderr)
	HintWriter   io.Writer // Where to write hints (default: stderr)
	UseColor     bool      // Whether to use colored output
}

// DefaultConfig returns the configuration used outside of commands.
func DefaultConfig() Config {
	return Config{
		ShowHints:   true,
		ShowAlerts:  true,
		MaxHints:    2,
		AlertWriter: os.Stderr,
		HintWriter:  os.Stderr,
		UseColor:    isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// New creates a new Notifier with the given configuration.
func New(config Config) *Notifier {
	format := output.DetectFormat(config.OutputFormat)
	alertWriter := alerts.NewFormatWriter(config.AlertWriter, format).WithConfig(alerts.WriterConfig{
		ShowDetails: true,
		UseColor:    config.UseColor,
	})

	registry := hints.NewRegistry().WithConfig(hints.RegistryConfig{
		MaxHints: config.MaxHints,
		Enabled:  config.ShowHints,
	})
	hints.RegisterDefaultProviders(registry)

	return &Notifier{
		alertWriter:  alertWriter,
		hintRegistry: registry,
		config:       config,
	}
}

// NewFromCommand creates a Notifier writing to the command's error stream,
// configured from the global flags. Quiet runs and CI get no hints.
func NewFromCommand(cmd *cobra.Command) *Notifier {
	flags := globals.Parse(cmd)

	config := DefaultConfig()
	config.OutputFormat = flags.Output
	config.AlertWriter = cmd.ErrOrStderr()
	config.HintWriter = cmd.ErrOrStderr()
	config.ShowHints = !flags.Quiet && !isCI()
	config.ShowAlerts = !flags.Quiet
	config.UseColor = !flags.NoColor && isTerminal(cmd.ErrOrStderr())
	return New(config)
}

// Alert sends an alert notification.
func (n *Notifier) Alert(alert *alerts.Alert) error {
	if !n.config.ShowAlerts {
		return nil
	}
	return n.alertWriter.WriteAlert(alert)
}

// Success sends a success alert with hints for ctx.
func (n *Notifier) Success(message string, ctx hints.Context, details ...string) error {
	ctx.Succeeded = true
	return n.AlertWithHints(alerts.NewSuccess(message).WithDetails(details...), ctx)
}

// Warning sends a warning alert with hints for ctx.
func (n *Notifier) Warning(message string, ctx hints.Context, details ...string) error {
	return n.AlertWithHints(alerts.NewWarning(message).WithDetails(details...), ctx)
}

// Failure reports err as an error alert and shows recovery hints. The
// error is returned unchanged so commands can end with it.
func (n *Notifier) Failure(err error, ctx hints.Context) error {
	ctx.Succeeded = false
	if ctx.ErrorType == "" {
		ctx.ErrorType = ErrorType(err)
	}
	if alertErr := n.AlertWithHints(alerts.NewError("Operation failed").WithError(err), ctx); alertErr != nil {
		return errors.Join(err, alertErr)
	}
	return err
}

// AlertWithHints sends an alert and displays contextual hints.
func (n *Notifier) AlertWithHints(alert *alerts.Alert, ctx hints.Context) error {
	if err := n.Alert(alert); err != nil {
		return errors.WrapIO("write", "alert", err)
	}
	return n.Hints(ctx)
}

// Hints displays contextual hints without an alert.
func (n *Notifier) Hints(ctx hints.Context) error {
	if !n.config.ShowHints {
		return nil
	}
	list := n.hintRegistry.Hints(ctx)
	if len(list) == 0 {
		return nil
	}
	return hints.Display(n.config.HintWriter, output.DetectFormat(n.config.OutputFormat), list)
}

// AddHintFunc registers a function as a hint provider.
func (n *Notifier) AddHintFunc(name string, fn func(hints.Context) []*hints.Hint) {
	n.hintRegistry.RegisterFunc(name, fn)
}

// isTerminal checks if the given writer is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// isCI detects if running in a CI/CD environment.
func isCI() bool {
	for _, envVar := range []string{"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
