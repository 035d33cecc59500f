// Package tui holds the lipgloss styles shared by orbitdemo's terminal
// output.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains every lipgloss style orbitdemo renders with.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Border     lipgloss.Style
	RowFresh   lipgloss.Style
	RowPending lipgloss.Style
	RowFailed  lipgloss.Style
	Dim        lipgloss.Style
}

// DefaultStyles returns orbitdemo's default terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		RowFresh:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		RowPending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		RowFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Icons used in orbitdemo's table output.
const (
	IconQueued     = "⏳"
	IconQuarantine = "☠"
)
