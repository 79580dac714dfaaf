package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom, splitting height by Ratios.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacingTotal := max(0, v.Spacing*(len(v.Widgets)-1))
	heights := split(max(1, height-spacingTotal), len(v.Widgets), v.Ratios)
	parts := make([]string, 0, len(v.Widgets)*2)
	for i, w := range v.Widgets {
		parts = append(parts, w.Render(width, max(1, heights[i])))
		if i < len(v.Widgets)-1 {
			for s := 0; s < v.Spacing; s++ {
				parts = append(parts, "")
			}
		}
	}
	return strings.Join(parts, "\n")
}

// HStack places widgets side by side, splitting width by Ratios.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gapTotal := max(0, h.Gap*(len(h.Widgets)-1))
	widths := split(max(1, width-gapTotal), len(h.Widgets), h.Ratios)
	cols := make([][]string, len(h.Widgets))
	rows := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rows = max(rows, len(cols[i]))
	}
	out := make([]string, rows)
	for r := range out {
		cells := make([]string, len(cols))
		for i, col := range cols {
			line := ""
			if r < len(col) {
				line = col[r]
			}
			cells[i] = PadRight(line, widths[i])
		}
		out[r] = strings.Join(cells, strings.Repeat(" ", h.Gap))
	}
	return strings.Join(out, "\n")
}

func split(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	if len(ratios) != n {
		for i := range out {
			out[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	sum := 0.0
	weights := make([]float64, n)
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	used := 0
	for i, w := range weights {
		out[i] = int(math.Floor(w / sum * float64(total)))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// PadRight truncates or pads s to exactly width terminal columns.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// PlaceWithFooter pins status and footer to the last two rows of a
// width x height screen.
func PlaceWithFooter(body, status, footer string, width, height int) string {
	if height == 0 {
		return body + "\n\n" + status + "\n" + footer
	}
	contentHeight := max(1, height-2)
	if lipgloss.Height(body) >= contentHeight {
		lines := strings.Split(body, "\n")[:contentHeight]
		return strings.Join(lines, "\n") + "\n" + status + "\n" + footer
	}
	placed := lipgloss.Place(width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// full-width lines keep stale cells from the previous frame out
	lines := strings.Split(placed, "\n")
	for i, line := range lines {
		lines[i] = PadRight(line, width)
	}
	return strings.Join(lines, "\n") + "\n" + status + "\n" + footer
}
