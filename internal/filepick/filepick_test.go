package filepick

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("customer_name,date,total\n"), 0o600))
	}
}

func TestScanListsOnlyCSV(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "sales.csv", "notes.txt", "Dispatch.CSV", "a.csv")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0o755))

	got, err := Scan(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
		require.Equal(t, filepath.Join(dir, c.Name), c.Path)
	}
	require.Equal(t, []string{"Dispatch.CSV", "a.csv", "sales.csv"}, names)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestPickerRanksPrefixMatchesFirst(t *testing.T) {
	p := NewPicker([]Candidate{{Name: "old_sales.csv"}, {Name: "sales_2024.csv"}, {Name: "dispatch.csv"}})
	p.SetQuery("sal")

	items := p.Items()
	require.Len(t, items, 2)
	require.Equal(t, "sales_2024.csv", items[0].Name)
	require.Equal(t, "old_sales.csv", items[1].Name)
}

func TestPickerToleratesTypos(t *testing.T) {
	p := NewPicker([]Candidate{{Name: "dispatch.csv"}, {Name: "sales.csv"}})
	p.SetQuery("dsipatch")

	cur, ok := p.Current()
	require.True(t, ok)
	require.Equal(t, "dispatch.csv", cur.Name)
	require.Len(t, p.Items(), 1)
}

func TestPickerCursorClampsAfterFiltering(t *testing.T) {
	p := NewPicker([]Candidate{{Name: "a.csv"}, {Name: "b.csv"}, {Name: "c.csv"}})
	p.CursorDown()
	p.CursorDown()
	p.CursorDown()
	require.Equal(t, 2, p.Cursor())

	p.SetQuery("zzzzzzzz")
	require.Equal(t, 0, p.Cursor())
	_, ok := p.Current()
	require.False(t, ok)

	p.SetQuery("")
	p.CursorUp()
	require.Equal(t, 0, p.Cursor())
}
