package tui

import "github.com/charmbracelet/lipgloss"

// Palette: journal blues with a green/red status pair.
const (
	colorHeading = "#1A5276"
	colorOK      = "#1E8449"
	colorFail    = "#C0392B"
	colorDim     = "#7F8C8D"
	colorBright  = "#FDFEFE"
	colorFrame   = "#2980B9"
)

// Styles shared across the demo views
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHeading)).
		MarginTop(1).
		MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorOK))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorFail))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorDim))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorFrame)).
		Padding(1, 2)

	HighlightStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorBright)).
		Background(lipgloss.Color(colorHeading)).
		Padding(0, 1)
)
