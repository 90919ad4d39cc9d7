package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dm/ctrack/internal/model"
)

// RegionStats is a worldwide or per-country summary from /v3/covid-19/all and
// /v3/covid-19/countries. Counts are pointers so an absent field can be told
// apart from a real zero.
type RegionStats struct {
	Country        *string      `json:"country,omitempty" validate:"required,min=1"`
	CountryInfo    *CountryInfo `json:"countryInfo,omitempty"`
	Cases          *int64       `json:"cases" validate:"required,gte=0"`
	TodayCases     *int64       `json:"todayCases"`
	Deaths         *int64       `json:"deaths"`
	TodayDeaths    *int64       `json:"todayDeaths"`
	Recovered      *int64       `json:"recovered"`
	TodayRecovered *int64       `json:"todayRecovered"`
	Updated        int64        `json:"updated"`
}

// CountryInfo holds the identifying and map-centering fields of a country.
// ISO2 is null upstream for entities such as cruise ships.
type CountryInfo struct {
	ISO2 *string `json:"iso2" validate:"omitempty,len=2"`
	ISO3 *string `json:"iso3"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Flag string  `json:"flag"`
}

// Timeline holds the three cumulative series of a historical payload.
// A nil field means the metric object was absent or null.
type Timeline struct {
	Cases     *DatedCounts `json:"cases"`
	Deaths    *DatedCounts `json:"deaths"`
	Recovered *DatedCounts `json:"recovered"`
}

// countryHistory is the per-country historical payload shape.
type countryHistory struct {
	Country  string    `json:"country"`
	Province []string  `json:"province"`
	Timeline *Timeline `json:"timeline"`
}

// DatedCount is a single date → cumulative count entry.
type DatedCount struct {
	Date  string
	Count json.Number
}

// DatedCounts is a JSON object of date → count, kept in document order.
// Upstream date keys ("3/14/22") do not sort lexically, so the order the
// source delivered them in is the only reliable time order.
type DatedCounts []DatedCount

// UnmarshalJSON decodes a JSON object while preserving key order. Values must
// be JSON numbers; anything else is ErrMalformedInput.
func (d *DatedCounts) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object of date counts, got %v", model.ErrMalformedInput, tok)
	}

	out := make(DatedCounts, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
		}
		date, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected key %v", model.ErrMalformedInput, tok)
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("%w: date %q: %v", model.ErrMalformedInput, date, err)
		}
		n, ok := v.(json.Number)
		if !ok {
			return fmt.Errorf("%w: date %q: value %v is not a number", model.ErrMalformedInput, date, v)
		}
		out = append(out, DatedCount{Date: date, Count: n})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}
	*d = out
	return nil
}

// Dates returns the keys in document order.
func (d DatedCounts) Dates() []string {
	out := make([]string, len(d))
	for i, e := range d {
		out[i] = e.Date
	}
	return out
}
