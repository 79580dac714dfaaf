package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget draws itself into a width x height cell.
type Widget interface {
	Render(width, height int) string
}

// Text is pre-rendered content clipped to the cell.
type Text string

func (t Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(string(t), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "…")
	}
	return strings.Join(lines, "\n")
}
