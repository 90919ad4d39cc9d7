package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/dm/ctrack/internal/client"
	"github.com/dm/ctrack/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SeriesFromTimeline validates a historical payload and converts it into a
// TimeSeriesSnapshot. All three metric objects must be present and every value
// must be a non-negative integer. The date axis follows the cases object.
func SeriesFromTimeline(tl client.Timeline) (model.TimeSeriesSnapshot, error) {
	raw := map[model.Metric]*client.DatedCounts{
		model.MetricCases:     tl.Cases,
		model.MetricDeaths:    tl.Deaths,
		model.MetricRecovered: tl.Recovered,
	}

	values := make(map[model.Metric]map[string]int64, len(raw))
	for _, m := range model.Metrics {
		counts := raw[m]
		if counts == nil {
			return model.TimeSeriesSnapshot{}, fmt.Errorf("%w: %s series missing", model.ErrMalformedInput, m)
		}
		series, err := countsToMap(m, *counts)
		if err != nil {
			return model.TimeSeriesSnapshot{}, err
		}
		values[m] = series
	}

	return model.TimeSeriesSnapshot{
		Dates:  tl.Cases.Dates(),
		Values: values,
	}, nil
}

func countsToMap(m model.Metric, counts client.DatedCounts) (map[string]int64, error) {
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		n, err := strconv.ParseInt(c.Count.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s on %q: %q is not an integer", model.ErrMalformedInput, m, c.Date, c.Count)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %s on %q: negative count %d", model.ErrMalformedInput, m, c.Date, n)
		}
		if _, dup := out[c.Date]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate date %q", model.ErrMalformedInput, m, c.Date)
		}
		out[c.Date] = n
	}
	return out, nil
}

// SummaryFromStats converts a worldwide or country payload into the info-box
// summary. Absent counts stay nil.
func SummaryFromStats(s client.RegionStats, sel model.Selection) model.RegionSummary {
	sum := model.RegionSummary{
		Name:           sel.Label(),
		Cases:          s.Cases,
		TodayCases:     s.TodayCases,
		Deaths:         s.Deaths,
		TodayDeaths:    s.TodayDeaths,
		Recovered:      s.Recovered,
		TodayRecovered: s.TodayRecovered,
	}
	if !sel.IsWorldwide() && s.Country != nil && *s.Country != "" {
		sum.Name = *s.Country
	}
	if s.CountryInfo != nil {
		sum.Lat = s.CountryInfo.Lat
		sum.Long = s.CountryInfo.Long
	}
	return sum
}

// CountriesFromStats validates the country list and converts it, keeping the
// API's order. The first invalid record fails the whole list.
func CountriesFromStats(stats []client.RegionStats) ([]model.CountrySnapshot, error) {
	out := make([]model.CountrySnapshot, 0, len(stats))
	for i, s := range stats {
		c, err := countryFromStats(s)
		if err != nil {
			return nil, fmt.Errorf("country record %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func countryFromStats(s client.RegionStats) (model.CountrySnapshot, error) {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return model.CountrySnapshot{}, fmt.Errorf("%w: field %s failed %q", model.ErrMalformedInput, verrs[0].Namespace(), verrs[0].Tag())
		}
		return model.CountrySnapshot{}, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}

	c := model.CountrySnapshot{
		CountryName:    *s.Country,
		Cases:          *s.Cases,
		TodayCases:     deref(s.TodayCases),
		Deaths:         deref(s.Deaths),
		TodayDeaths:    deref(s.TodayDeaths),
		Recovered:      deref(s.Recovered),
		TodayRecovered: deref(s.TodayRecovered),
	}
	if s.CountryInfo != nil {
		if s.CountryInfo.ISO2 != nil {
			c.ISOCode = *s.CountryInfo.ISO2
		}
		c.Lat = s.CountryInfo.Lat
		c.Long = s.CountryInfo.Long
	}
	return c, nil
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
