package view

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

// ---------------------------------------------------------------------------
// Semantic aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorOverlay1
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	priceStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	counterStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOverlay0).Background(colorAccent).Padding(0, 1)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Foreground(colorText).Background(colorSurface1)
	disabledStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorOverlay0).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorOverlay0).Background(colorFocus).Bold(true)
)

// categoryColors maps catalog categories to badge colours. Unknown
// categories fall back to categoryUnknown.
var categoryColors = map[string]lipgloss.Color{
	"soft-skill": colorGreen,
	"hard-skill": colorPeach,
	"button":     colorBlue,
	"additional": colorMauve,
	"other":      colorTeal,
}

const categoryUnknown lipgloss.Color = colorYellow

// CategoryColor returns the badge colour of a category.
func CategoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return categoryUnknown
}

func categoryBadge(category string) string {
	return lipgloss.NewStyle().
		Foreground(colorOverlay0).
		Background(CategoryColor(category)).
		Padding(0, 1).
		Render(category)
}

func button(label string, enabled bool) string {
	if !enabled {
		return disabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
