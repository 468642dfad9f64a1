package widgets

import "github.com/charmbracelet/lipgloss"

// Box frames content with a rounded border and a bracketed title. When Body is
// set it is rendered into the space inside the frame and the box fills the
// whole height it is given; otherwise Content is drawn as is.
type Box struct {
	Title   string
	Content string
	Body    Widget
	Accent  lipgloss.Color // border color; empty keeps the terminal default
}

func (b Box) Render(width, height int) string {
	if width <= 2 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width - 2).
		MaxHeight(height)
	if b.Accent != "" {
		style = style.BorderForeground(b.Accent)
	}
	body := b.Content
	if b.Body != nil {
		rows := height - 2
		if b.Title != "" {
			rows--
		}
		body = b.Body.Render(width-4, rows)
		style = style.Height(height - 2)
	}
	if b.Title != "" {
		body = "[" + b.Title + "]\n" + body
	}
	return style.Render(body)
}
