// Package styles centralizes the lipgloss styles and status symbols used
// by the CLI surface. MCP tool output never goes through this package,
// it stays plain text.
package styles

import "charm.land/lipgloss/v2"

// Style variables, kept in sync with the active theme by Init.
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(current.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(current.Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(current.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(current.Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(current.Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(current.Normal)
)

func apply(t Theme) {
	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
}
