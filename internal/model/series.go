package model

import "fmt"

// Metric names one of the three cumulative series.
type Metric string

const (
	MetricCases     Metric = "cases"
	MetricDeaths    Metric = "deaths"
	MetricRecovered Metric = "recovered"
)

// Metrics lists all metrics in display order.
var Metrics = []Metric{MetricCases, MetricRecovered, MetricDeaths}

// ParseMetric converts a string into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricCases, MetricDeaths, MetricRecovered:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown metric %q", ErrMalformedInput, s)
	}
}

// Valid reports whether m is one of the known metrics.
func (m Metric) Valid() bool {
	_, err := ParseMetric(string(m))
	return err == nil
}

// TimeSeriesSnapshot holds cumulative counts per date for each metric.
//
// Dates is the chart axis, taken from the cases series in the order the
// source delivered it. It is never re-sorted: date keys such as "3/14/22"
// are locale formatted and do not sort as strings.
type TimeSeriesSnapshot struct {
	Dates  []string
	Values map[Metric]map[string]int64
}

// Len returns the number of dates on the axis.
func (s TimeSeriesSnapshot) Len() int {
	return len(s.Dates)
}

// Value returns the cumulative count of metric m on date, and whether it exists.
func (s TimeSeriesSnapshot) Value(m Metric, date string) (int64, bool) {
	series, ok := s.Values[m]
	if !ok {
		return 0, false
	}
	v, ok := series[date]
	return v, ok
}

// ChartPoint is one day-over-day delta. Y may be negative when upstream
// corrects a cumulative count downward.
type ChartPoint struct {
	X string
	Y int64
}
