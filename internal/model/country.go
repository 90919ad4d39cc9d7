package model

// CountrySnapshot is one country's cumulative record from the country list.
type CountrySnapshot struct {
	CountryName    string
	ISOCode        string // 2-letter; empty for entities without one
	Cases          int64
	TodayCases     int64
	Deaths         int64
	TodayDeaths    int64
	Recovered      int64
	TodayRecovered int64
	Lat            float64
	Long           float64
}

// RegionSummary feeds the info boxes. Nil counts were absent upstream.
type RegionSummary struct {
	Name           string
	Cases          *int64
	TodayCases     *int64
	Deaths         *int64
	TodayDeaths    *int64
	Recovered      *int64
	TodayRecovered *int64
	Lat            float64
	Long           float64
}

// Total returns the cumulative count of m, nil if absent.
func (r RegionSummary) Total(m Metric) *int64 {
	switch m {
	case MetricCases:
		return r.Cases
	case MetricDeaths:
		return r.Deaths
	case MetricRecovered:
		return r.Recovered
	}
	return nil
}

// Today returns today's count of m, nil if absent.
func (r RegionSummary) Today(m Metric) *int64 {
	switch m {
	case MetricCases:
		return r.TodayCases
	case MetricDeaths:
		return r.TodayDeaths
	case MetricRecovered:
		return r.TodayRecovered
	}
	return nil
}

// RankedCountryRow holds display-ready data for a single row of the country table.
type RankedCountryRow struct {
	CountryName string
	ISOCode     string
	Cases       int64
}

// SelectOption is one entry of the country picker. ID only identifies the
// list item and has no meaning across calls.
type SelectOption struct {
	ID      string
	Name    string
	ISOCode string
}

// Selection identifies the region being viewed. The zero value is worldwide.
type Selection struct {
	ISOCode string
	Name    string
}

// Worldwide is the default selection.
var Worldwide = Selection{}

// IsWorldwide reports whether s selects the worldwide aggregate.
func (s Selection) IsWorldwide() bool {
	return s.ISOCode == "" && s.Name == ""
}

// Query returns the API path key for s: the ISO code, falling back to the
// country name. Worldwide returns "".
func (s Selection) Query() string {
	if s.ISOCode != "" {
		return s.ISOCode
	}
	return s.Name
}

// Label returns the display name of s.
func (s Selection) Label() string {
	if s.IsWorldwide() {
		return "Worldwide"
	}
	if s.Name != "" {
		return s.Name
	}
	return s.ISOCode
}
