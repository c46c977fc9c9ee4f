package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// Widgets
	Label   lipgloss.Style
	Button  lipgloss.Style
	Frame   lipgloss.Style
	BarFill lipgloss.Style
	BarRest lipgloss.Style
	Unknown lipgloss.Style

	// Status line
	StatusBar     lipgloss.Style
	StatusSkipped lipgloss.Style

	// Misc
	Muted lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		Frame: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		BarFill: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		BarRest: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Unknown: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // Muted yellow

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),
		StatusSkipped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Background(lipgloss.Color("236")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
