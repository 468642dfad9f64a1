package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table renders rows under a header with columns padded to their widest cell.
type Table struct {
	Headers []string
	Rows    [][]string
	Empty   string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return truncate(t.Empty, width)
	}
	cols := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		cols[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(cols); i++ {
			cols[i] = max(cols[i], ansi.StringWidth(row[i]))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cols))
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = padRight(cell, cols[i])
		}
		return truncate(strings.TrimRight(strings.Join(parts, " | "), " "), width)
	}

	sep := make([]string, len(cols))
	for i, w := range cols {
		sep[i] = strings.Repeat("-", w)
	}
	lines := []string{line(t.Headers), truncate(strings.Join(sep, "-+-"), width)}
	if len(t.Rows) == 0 && t.Empty != "" {
		lines = append(lines, truncate(t.Empty, width))
	}
	for _, row := range t.Rows {
		if len(lines) >= height {
			break
		}
		lines = append(lines, line(row))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
