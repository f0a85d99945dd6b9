// Package tui provides the Bubble Tea pager used by peekapi-spillctl's
// --tui flag. It is opt-in and read-only: there is no view that mutates a
// spill file.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7C3AED")
	warnColor    = lipgloss.Color("#F59E0B")
	errColor     = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	LabelStyle = lipgloss.NewStyle().Foreground(mutedColor).Width(14)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	WarnStyle  = lipgloss.NewStyle().Foreground(warnColor)
	ErrStyle   = lipgloss.NewStyle().Foreground(errColor)
	BoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(1, 2)
	HelpStyle  = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)

// statusStyle colors an HTTP status code by class.
func statusStyle(code int) lipgloss.Style {
	switch {
	case code >= 500:
		return ErrStyle
	case code >= 400:
		return WarnStyle
	default:
		return ValueStyle
	}
}
