package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#b4befe")).
	Padding(1, 2)

// RenderPopup draws popup in a bordered card centered over base. Columns of
// base outside the card stay visible.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := popupStyle.MaxWidth(width).Render(popup)
	overlay := fitCanvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	return overlayOntoBase(fitCanvas(base, width, height), overlay, width, height)
}

func overlayOntoBase(base, overlay string, width, height int) string {
	baseLines := toLines(base, height)
	overlayLines := toLines(overlay, height)
	out := make([]string, height)
	for i := range out {
		under := PadRight(baseLines[i], width)
		over := PadRight(overlayLines[i], width)
		start, end, ok := segmentBounds(over, width)
		if !ok {
			out[i] = under
			continue
		}
		left := ansi.Truncate(under, start, "")
		mid := ansi.Truncate(dropColumns(over, start), end-start, "")
		right := dropColumns(under, end)
		out[i] = PadRight(left+mid+right, width)
	}
	return strings.Join(out, "\n")
}

// segmentBounds finds the non-blank column span of an overlay line.
func segmentBounds(line string, width int) (start, end int, ok bool) {
	plain := []rune(ansi.Strip(ansi.Truncate(line, width, "")))
	end = len(plain)
	for end > 0 && plain[end-1] == ' ' {
		end--
	}
	for start < end && plain[start] == ' ' {
		start++
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func fitCanvas(s string, width, height int) string {
	lines := toLines(s, height)
	for i := range lines {
		lines[i] = PadRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func toLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}
