package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultPNGWidth  = 960
	defaultPNGHeight = 480
)

type pngRenderer struct{}

func (pngRenderer) Render(w io.Writer, s Series, size Size) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Len() == 0 {
		return fmt.Errorf("series %q: nothing to plot", s.Label)
	}
	if size.Width <= 0 {
		size.Width = defaultPNGWidth
	}
	if size.Height <= 0 {
		size.Height = defaultPNGHeight
	}

	xs := make([]float64, s.Len())
	ticks := make([]gochart.Tick, s.Len())
	for i := range xs {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: s.Categories[i]}
	}

	lo, hi := s.Values[0], s.Values[0]
	for _, v := range s.Values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		pad := math.Max(1, math.Abs(lo)*0.1)
		lo, hi = lo-pad, hi+pad
	}

	style := gochart.Style{
		StrokeWidth: 2,
		StrokeColor: gochart.ColorBlue,
		DotWidth:    4,
		DotColor:    gochart.ColorBlue,
	}
	if s.Fill {
		style.FillColor = gochart.ColorBlue.WithAlpha(64)
	} else {
		style.FillColor = drawing.ColorTransparent
	}

	ch := gochart.Chart{
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			// half a step of slack so a single category still has a non-zero range
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(s.Len()) - 0.5},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    s.Label,
				XValues: xs,
				YValues: s.Values,
				Style:   style,
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}
