package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme styles the lines a session prints between prompts.
type Theme struct {
	Title lipgloss.Style
	Info  lipgloss.Style
	Error lipgloss.Style
	Key   lipgloss.Style
}

// DefaultTheme is used when WithTheme is not supplied.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Key:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

type settings struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	validators        *validation.Registry
	diagnostics       diag.Sink
}

func newSettings(options []Option) settings {
	s := settings{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		validators:   validation.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	s.diagnostics = diag.OrNop(s.diagnostics)
	return s
}

// Option configures a Session or the TUI renderer.
type Option func(*settings)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *settings) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(s *settings) {
		s.submitTransformer = fn
	}
}

// WithTheme replaces the default styles.
func WithTheme(theme Theme) Option {
	return func(s *settings) {
		s.theme = theme
	}
}

// WithValidators resolves named custom rules against registry instead of
// the process-wide one.
func WithValidators(registry *validation.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.validators = registry
		}
	}
}

// WithDiagnostics routes non-fatal problems (undecodable stored values) to
// sink.
func WithDiagnostics(sink diag.Sink) Option {
	return func(s *settings) {
		s.diagnostics = sink
	}
}
