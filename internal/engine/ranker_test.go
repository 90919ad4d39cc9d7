package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/ctrack/internal/model"
)

func rowNames(rows []model.RankedCountryRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.CountryName
	}
	return out
}

func TestRank_DescendingStable(t *testing.T) {
	in := []model.CountrySnapshot{
		{CountryName: "B", Cases: 5},
		{CountryName: "A", Cases: 10},
		{CountryName: "C", Cases: 5},
	}

	got := Rank(in)
	assert.Equal(t, []string{"A", "B", "C"}, rowNames(got))
	assert.Equal(t, int64(10), got[0].Cases)

	// Input order untouched.
	assert.Equal(t, "B", in[0].CountryName)
}

func TestRank_ManyTiesKeepInputOrder(t *testing.T) {
	var in []model.CountrySnapshot
	want := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		name := string(rune('a'+i%26)) + string(rune('0'+i/26))
		in = append(in, model.CountrySnapshot{CountryName: name, Cases: 7})
		want = append(want, name)
	}

	assert.Equal(t, want, rowNames(Rank(in)))
}

func TestRank_Idempotent(t *testing.T) {
	in := []model.CountrySnapshot{
		{CountryName: "X", ISOCode: "XX", Cases: 1},
		{CountryName: "Y", ISOCode: "YY", Cases: 3},
		{CountryName: "Z", ISOCode: "ZZ", Cases: 3},
		{CountryName: "W", ISOCode: "WW", Cases: 2},
	}
	first := Rank(in)

	again := make([]model.CountrySnapshot, len(first))
	for i, r := range first {
		again[i] = model.CountrySnapshot{CountryName: r.CountryName, ISOCode: r.ISOCode, Cases: r.Cases}
	}
	assert.Equal(t, first, Rank(again))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestToSelectOptions(t *testing.T) {
	in := []model.CountrySnapshot{
		{CountryName: "France", ISOCode: "FR"},
		{CountryName: "Diamond Princess"},
		{CountryName: "France", ISOCode: "FR"},
	}

	opts := ToSelectOptions(in)
	require.Len(t, opts, len(in))

	seen := make(map[string]bool)
	for i, o := range opts {
		assert.NotEmpty(t, o.ID)
		assert.False(t, seen[o.ID], "duplicate id %q", o.ID)
		seen[o.ID] = true
		assert.Equal(t, in[i].CountryName, o.Name)
		assert.Equal(t, in[i].ISOCode, o.ISOCode)
	}
	assert.Empty(t, ToSelectOptions(nil))
}
