// Package chart holds the process-wide set of series renderers. Register must
// run once during startup before Lookup is used; it is safe to call again.
package chart

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Renderer names.
const (
	Text = "text"
	PNG  = "png"
)

// Series is a single labelled line over ordered categories.
type Series struct {
	Label      string
	Categories []string
	Values     []float64 // index aligned with Categories
	Fill       bool
}

// Len returns the number of plotted points.
func (s Series) Len() int {
	return len(s.Values)
}

// Validate reports whether categories and values line up.
func (s Series) Validate() error {
	if len(s.Categories) != len(s.Values) {
		return fmt.Errorf("series %q: %d categories but %d values", s.Label, len(s.Categories), len(s.Values))
	}
	return nil
}

// Size is the target canvas: columns/lines for text, pixels for images.
type Size struct {
	Width  int
	Height int
}

// Renderer draws a series onto w.
type Renderer interface {
	Render(w io.Writer, s Series, size Size) error
}

var (
	registerOnce sync.Once
	mu           sync.RWMutex
	renderers    = map[string]Renderer{}
)

// Register installs the built-in renderers exactly once per process.
func Register() {
	registerOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		renderers[Text] = textRenderer{}
		renderers[PNG] = pngRenderer{}
	})
}

// Lookup returns the renderer registered under name.
func Lookup(name string) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("chart renderer %q not registered", name)
	}
	return r, nil
}

// Names lists registered renderers in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
