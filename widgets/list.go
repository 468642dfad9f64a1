package widgets

import "strings"

// List renders a bulleted list. Empty is shown in place of items when there are
// none; an empty Empty leaves the block blank.
type List struct {
	Title string
	Items []string
	Empty string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := make([]string, 0, len(l.Items)+1)
	if l.Title != "" {
		rows = append(rows, truncate(l.Title, width))
	}
	if len(l.Items) == 0 && l.Empty != "" {
		rows = append(rows, truncate(l.Empty, width))
	}
	for _, item := range l.Items {
		rows = append(rows, truncate("- "+item, width))
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}
