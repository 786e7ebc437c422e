package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink).MarginBottom(1)
	inputStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	inputFocused = inputStyle.BorderForeground(colorLavender)
	taskStyle    = lipgloss.NewStyle().Foreground(colorText)
	doneStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	checkStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	countStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
)
