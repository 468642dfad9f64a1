package widgets

import (
	"math"
	"strconv"
	"strings"
)

const (
	chartPoint = '●'
	chartTrace = '·'
)

// LineChart draws a single series as points joined by a dotted trace, with a
// y gutter showing the range and category labels under the x axis.
type LineChart struct {
	Title  string
	Legend string
	Labels []string
	Values []float64
}

func (c LineChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	header := c.Title
	if c.Legend != "" {
		header += "  ── " + c.Legend
	}
	if len(c.Values) == 0 {
		return Text(header+"\n(no data)").Render(width, height)
	}

	lo, hi := c.Values[0], c.Values[0]
	for _, v := range c.Values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	top, bottom := formatAxis(hi), formatAxis(lo)
	gutter := max(len(top), len(bottom))

	rows := max(1, height-3)
	plotWidth := max(1, width-gutter-1)
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotWidth))
	}

	xs := make([]int, len(c.Values))
	ys := make([]int, len(c.Values))
	for i, v := range c.Values {
		xs[i] = columnFor(i, len(c.Values), plotWidth)
		ys[i] = int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
	}
	for i := 0; i+1 < len(xs); i++ {
		span := xs[i+1] - xs[i]
		for x := xs[i] + 1; x < xs[i+1]; x++ {
			t := float64(x-xs[i]) / float64(span)
			y := int(math.Round(float64(ys[i]) + t*float64(ys[i+1]-ys[i])))
			grid[y][x] = chartTrace
		}
	}
	for i := range xs {
		grid[ys[i]][xs[i]] = chartPoint
	}

	lines := make([]string, 0, rows+3)
	lines = append(lines, truncate(header, width))
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = top
		case rows - 1:
			label = bottom
		}
		lines = append(lines, strings.Repeat(" ", gutter-len(label))+label+"┤"+string(row))
	}
	lines = append(lines, strings.Repeat(" ", gutter)+"└"+strings.Repeat("─", plotWidth))
	lines = append(lines, strings.Repeat(" ", gutter+1)+placeLabels(c.Labels, xs, plotWidth))
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// columnFor spreads n points evenly over width columns.
func columnFor(i, n, width int) int {
	if n <= 1 || width <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

// placeLabels writes each label at its point's column, pulling labels left at
// the right edge and skipping any that would overlap the previous one.
func placeLabels(labels []string, xs []int, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i, x := range xs {
		if i >= len(labels) {
			break
		}
		label := []rune(labels[i])
		start := x
		if start+len(label) > width {
			start = max(0, width-len(label))
		}
		if start < next {
			continue
		}
		for j, r := range label {
			if start+j >= width {
				break
			}
			line[start+j] = r
		}
		next = start + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
