package widgets

import (
	"math"
	"strings"

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
	usable := max(1, height-spacingTotal)
	heights := splitSizes(usable, len(v.Widgets), v.Ratios)
	blocks := make([]string, 0, len(v.Widgets)*2)
	for i, w := range v.Widgets {
		blocks = append(blocks, w.Render(width, max(1, heights[i])))
		for s := 0; i < len(v.Widgets)-1 && s < v.Spacing; s++ {
			blocks = append(blocks, "")
		}
	}
	return strings.Join(blocks, "\n")
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
	usable := max(1, width-gapTotal)
	widths := splitSizes(usable, len(h.Widgets), h.Ratios)
	columns := make([][]string, len(h.Widgets))
	tallest := 0
	for i, w := range h.Widgets {
		columns[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		tallest = max(tallest, len(columns[i]))
	}
	gap := strings.Repeat(" ", h.Gap)
	out := make([]string, 0, tallest)
	for line := 0; line < tallest; line++ {
		cells := make([]string, len(columns))
		for i := range columns {
			if line < len(columns[i]) {
				cells[i] = padRight(columns[i][line], widths[i])
			} else {
				cells[i] = strings.Repeat(" ", widths[i])
			}
		}
		out = append(out, strings.Join(cells, gap))
	}
	return strings.Join(out, "\n")
}

// splitSizes divides total into n parts, proportionally when ratios has n entries.
func splitSizes(total, n int, ratios []float64) []int {
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
	weights := make([]float64, n)
	sum := 0.0
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	used := 0
	for i := range out {
		out[i] = int(math.Floor(weights[i] * float64(total) / sum))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
