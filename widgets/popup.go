package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup draws Body in a bordered card centred over Base. Base columns outside
// the card stay visible.
type Popup struct {
	Base  Widget
	Title string
	Body  string
}

func (p Popup) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	base := ""
	if p.Base != nil {
		base = p.Base.Render(width, height)
	}
	content := p.Body
	if p.Title != "" {
		content = lipgloss.NewStyle().Bold(true).Render(p.Title) + "\n\n" + content
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(content)
	overlay := fitCanvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	return overlayOntoBase(fitCanvas(base, width, height), overlay, width, height)
}

func overlayOntoBase(base, overlay string, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, height)
	out := make([]string, height)
	for i := range out {
		under := padRight(baseLines[i], width)
		over := padRight(overlayLines[i], width)
		start, end, ok := visibleBounds(over, width)
		if !ok {
			out[i] = under
			continue
		}
		left := ansi.Truncate(under, start, "")
		mid := ansi.Truncate(dropColumns(over, start), end-start, "")
		right := dropColumns(under, end)
		out[i] = padRight(left+mid+right, width)
	}
	return strings.Join(out, "\n")
}

// visibleBounds finds the first and last non-blank columns of line.
func visibleBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	start = len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	return start, ansi.StringWidth(trimmed), true
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
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
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
