// Package filepick lists CSV files available for upload and filters them by a
// typed query.
package filepick

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// maxTypoDistance is how far a query may be from a file stem and still match
// when it is not a subsequence of the name.
const maxTypoDistance = 2

// Candidate is a CSV file on disk.
type Candidate struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Scan returns the *.csv files directly inside dir, sorted by name.
func Scan(dir string) ([]Candidate, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Candidate{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Picker keeps a filtered, ranked view over candidates and a cursor into it.
type Picker struct {
	items    []Candidate
	filtered []Candidate
	query    string
	cursor   int
}

func NewPicker(items []Candidate) *Picker {
	p := &Picker{}
	p.SetItems(items)
	return p
}

func (p *Picker) SetItems(items []Candidate) {
	p.items = append([]Candidate(nil), items...)
	p.rebuild()
}

func (p *Picker) SetQuery(q string) {
	p.query = q
	p.rebuild()
}

func (p *Picker) Cursor() int { return p.cursor }

func (p *Picker) Items() []Candidate {
	return append([]Candidate(nil), p.filtered...)
}

func (p *Picker) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Picker) CursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

// Current returns the candidate under the cursor.
func (p *Picker) Current() (Candidate, bool) {
	if len(p.filtered) == 0 {
		return Candidate{}, false
	}
	return p.filtered[min(max(p.cursor, 0), len(p.filtered)-1)], true
}

type scored struct {
	item  Candidate
	score int
	index int
}

func (p *Picker) rebuild() {
	q := strings.TrimSpace(p.query)
	rows := make([]scored, 0, len(p.items))
	for i, item := range p.items {
		ok, score := matchScore(item.Name, q)
		if !ok {
			continue
		}
		rows = append(rows, scored{item: item, score: score, index: i})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].index < rows[j].index
	})
	p.filtered = p.filtered[:0]
	for _, r := range rows {
		p.filtered = append(p.filtered, r.item)
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = max(0, len(p.filtered)-1)
	}
}

// matchScore accepts subsequence matches, scored by prefix and adjacency, and
// falls back to edit distance against the file stem for small typos.
func matchScore(name, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	nameLower := strings.ToLower(name)
	queryLower := strings.ToLower(query)

	if ok, score := subsequenceScore(nameLower, queryLower); ok {
		if strings.EqualFold(name, query) || strings.EqualFold(stem(name), query) {
			score += 20
		}
		return true, score
	}

	dist := levenshtein.ComputeDistance(stem(nameLower), strings.TrimSuffix(queryLower, ".csv"))
	if dist <= maxTypoDistance {
		return true, -dist
	}
	return false, 0
}

func subsequenceScore(label, query string) (bool, int) {
	matched := make([]int, 0, len(query))
	from := 0
	for i := 0; i < len(query); i++ {
		j := strings.IndexByte(label[from:], query[i])
		if j < 0 {
			return false, 0
		}
		matched = append(matched, from+j)
		from += j + 1
	}
	score := len(query)
	if matched[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matched); i++ {
		if matched[i] == matched[i-1]+1 {
			score += 3
		}
	}
	return true, score
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
