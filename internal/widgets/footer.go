package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	footerKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// Footer renders enabled bindings as "key desc" pairs on one line.
func Footer(bindings []key.Binding, width int) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if width <= 0 {
		return line
	}
	return PadRight(line, width)
}
