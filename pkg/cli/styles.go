package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorOK      = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style
	Muted   lipgloss.Style
	OK      lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles returns colored styles rendered for w. The renderer detects
// the color profile of w, so output to pipes and files stays plain.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		Heading: r.NewStyle().Bold(true).Underline(true),
		Name:    r.NewStyle().Foreground(colorPrimary),
		Muted:   r.NewStyle().Foreground(colorMuted).Italic(true),
		OK:      r.NewStyle().Foreground(colorOK),
		Warning: r.NewStyle().Foreground(colorWarning),
		Error:   r.NewStyle().Foreground(colorError).Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:   plain,
		Heading: plain,
		Name:    plain,
		Muted:   plain,
		OK:      plain,
		Warning: plain,
		Error:   plain,
	}
}

// Severity renders a finding severity label.
func (s *Styles) Severity(severity string) string {
	switch severity {
	case "error":
		return s.Error.Render(severity)
	case "warning":
		return s.Warning.Render(severity)
	default:
		return s.Muted.Render(severity)
	}
}
