package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEmptyNameNeverChangesLength(t *testing.T) {
	r := New()
	require.True(t, r.Add("Seed", ""))
	for _, phone := range []string{"", "0300-0000000", "   ", "not a number"} {
		require.False(t, r.Add("", phone))
		require.Equal(t, 1, r.Len())
	}
}

func TestAddKeepsWhitespaceOnlyName(t *testing.T) {
	r := New()
	require.True(t, r.Add("   ", ""))
	require.True(t, r.Add("\t", "0300-0000000"))
	require.Equal(t, []Record{{Name: "   "}, {Name: "\t", Phone: "0300-0000000"}}, r.Records())
}

func TestAddAppendsExactlyOne(t *testing.T) {
	r := New()
	names := []string{"Ali", "Ali", "Sara", "Acme Traders"}
	for i, n := range names {
		require.True(t, r.Add(n, ""))
		require.Equal(t, i+1, r.Len())
	}
	recs := r.Records()
	for i, n := range names {
		require.Equal(t, n, recs[i].Name)
	}
}

func TestScenarioSoftValidation(t *testing.T) {
	r := New()
	r.Add("Ali", "0300-0000000")
	r.Add("", "0311-1111111")

	require.Equal(t, []Record{{Name: "Ali", Phone: "0300-0000000"}}, r.Records())
}

func TestRowsAssignOneBasedIndex(t *testing.T) {
	r := New()
	r.Add("Ali", "1")
	r.Add("Sara", "2")

	rows := r.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].Index)
	require.Equal(t, "Ali", rows[0].Name)
	require.Equal(t, 2, rows[1].Index)
	require.Equal(t, "Sara", rows[1].Name)
}

func TestRecordsReturnsSnapshot(t *testing.T) {
	r := New()
	r.Add("Ali", "1")
	snap := r.Records()
	snap[0].Name = "changed"
	require.Equal(t, "Ali", r.Records()[0].Name)
}
