package widgets

import "github.com/charmbracelet/lipgloss"

// Box frames Content with a rounded border and an optional title line.
type Box struct {
	Title   string
	Content Widget
	Accent  lipgloss.Color
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if b.Accent != "" {
		style = style.BorderForeground(b.Accent)
	}
	innerW := max(1, width-style.GetHorizontalFrameSize())
	innerH := max(1, height-style.GetVerticalFrameSize())
	body := ""
	if b.Content != nil {
		contentH := innerH
		if b.Title != "" {
			contentH--
		}
		body = b.Content.Render(innerW, max(1, contentH))
	}
	if b.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render("["+b.Title+"]") + "\n" + body
	}
	return style.Width(innerW + style.GetHorizontalPadding()).Height(innerH).Render(body)
}
