package engine

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dm/ctrack/internal/model"
)

// Rank returns the records as table rows ordered by Cases descending.
// The sort is stable: equal counts keep the API's order, which keeps tables
// reproducible between polls. records is not modified.
func Rank(records []model.CountrySnapshot) []model.RankedCountryRow {
	out := make([]model.RankedCountryRow, len(records))
	for i, r := range records {
		out[i] = model.RankedCountryRow{
			CountryName: r.CountryName,
			ISOCode:     r.ISOCode,
			Cases:       r.Cases,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cases > out[j].Cases
	})
	return out
}

// ToSelectOptions returns one picker option per record, in input order, each
// with a freshly generated ID.
func ToSelectOptions(records []model.CountrySnapshot) []model.SelectOption {
	out := make([]model.SelectOption, len(records))
	for i, r := range records {
		out[i] = model.SelectOption{
			ID:      uuid.NewString(),
			Name:    r.CountryName,
			ISOCode: r.ISOCode,
		}
	}
	return out
}
