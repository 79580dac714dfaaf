package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorBase     = lipgloss.Color("#1e1e2e")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorSurface0 = lipgloss.Color("#313244")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorPeach    = lipgloss.Color("#fab387")
)

var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorSubtext).Background(colorSurface0)
	statusOKStyle  = lipgloss.NewStyle().Foreground(colorGreen).Background(colorSurface0).Bold(true)
	searchStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	headerStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorBase).Bold(true)
)
