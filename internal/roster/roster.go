// Package roster holds the session-only customer list edited on the screen.
package roster

// Record is a single customer entry. Records are never edited or removed.
type Record struct {
	Name  string
	Phone string
}

// Row is a record prepared for display with its 1-based position.
type Row struct {
	Index int
	Record
}

// Roster is an append-only, insertion-ordered list of records.
type Roster struct {
	records []Record
}

func New() *Roster {
	return &Roster{}
}

// Add appends a record. An empty name is silently ignored and reported as
// false. Names are stored as typed, so whitespace-only names are accepted.
func (r *Roster) Add(name, phone string) bool {
	if name == "" {
		return false
	}
	r.records = append(r.records, Record{Name: name, Phone: phone})
	return true
}

// Records returns a copy of the current list.
func (r *Roster) Records() []Record {
	return append([]Record(nil), r.records...)
}

func (r *Roster) Rows() []Row {
	rows := make([]Row, 0, len(r.records))
	for i, rec := range r.records {
		rows = append(rows, Row{Index: i + 1, Record: rec})
	}
	return rows
}

func (r *Roster) Len() int {
	return len(r.records)
}
