package engine

import (
	"errors"
	"fmt"

	"github.com/dm/ctrack/internal/model"
)

// BuildDeltas converts a cumulative series into day-over-day deltas for metric.
//
// The date axis is series.Dates (the cases series) in delivery order, even
// when metric is deaths or recovered. The first date only seeds the baseline,
// so N dates yield N-1 points. Negative deltas are kept.
//
// A date with no value for metric fails that point alone: it is skipped, a
// *model.MissingDataPointError is collected, and the baseline is reset so the
// next present date seeds it again without emitting. The points that could be
// computed are returned together with the joined errors.
func BuildDeltas(series model.TimeSeriesSnapshot, metric model.Metric) ([]model.ChartPoint, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("BuildDeltas: %w: unknown metric %q", model.ErrMalformedInput, metric)
	}

	points := make([]model.ChartPoint, 0, max(series.Len()-1, 0))
	var (
		errs     []error
		previous int64
		hasPrev  bool
	)
	for _, date := range series.Dates {
		v, ok := series.Value(metric, date)
		if !ok {
			errs = append(errs, &model.MissingDataPointError{Metric: metric, Date: date})
			hasPrev = false
			continue
		}
		if hasPrev {
			points = append(points, model.ChartPoint{X: date, Y: v - previous})
		}
		previous = v
		hasPrev = true
	}

	return points, errors.Join(errs...)
}

// DeltaValues returns the Y values of points as float64, for sparkline input.
func DeltaValues(points []model.ChartPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.Y)
	}
	return out
}
