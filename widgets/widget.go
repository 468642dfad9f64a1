package widgets

import "strings"

// Widget renders itself into at most width columns and height lines.
type Widget interface {
	Render(width, height int) string
}

// Text is a pre-rendered block clipped to the available area.
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
		lines[i] = truncate(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
