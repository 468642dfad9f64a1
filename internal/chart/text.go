package chart

import (
	"io"

	"github.com/jask/customerdesk/widgets"
)

type textRenderer struct{}

func (textRenderer) Render(w io.Writer, s Series, size Size) error {
	if err := s.Validate(); err != nil {
		return err
	}
	out := widgets.LineChart{
		Legend: s.Label,
		Labels: s.Categories,
		Values: s.Values,
	}.Render(size.Width, size.Height)
	_, err := io.WriteString(w, out)
	return err
}
