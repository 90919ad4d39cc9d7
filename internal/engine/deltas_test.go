package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/ctrack/internal/model"
)

// makeSeries builds a snapshot whose axis is the given dates and whose
// metrics all carry the same values.
func makeSeries(dates []string, cases []int64) model.TimeSeriesSnapshot {
	vals := make(map[string]int64, len(dates))
	for i, d := range dates {
		vals[d] = cases[i]
	}
	return model.TimeSeriesSnapshot{
		Dates: dates,
		Values: map[model.Metric]map[string]int64{
			model.MetricCases:     vals,
			model.MetricDeaths:    vals,
			model.MetricRecovered: vals,
		},
	}
}

func TestBuildDeltas_Basic(t *testing.T) {
	s := makeSeries([]string{"d1", "d2", "d3"}, []int64{10, 15, 12})

	got, err := BuildDeltas(s, model.MetricCases)
	require.NoError(t, err)
	assert.Equal(t, []model.ChartPoint{{X: "d2", Y: 5}, {X: "d3", Y: -3}}, got)
}

func TestBuildDeltas_EmptyAndSingle(t *testing.T) {
	got, err := BuildDeltas(model.TimeSeriesSnapshot{}, model.MetricCases)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = BuildDeltas(makeSeries([]string{"d1"}, []int64{5}), model.MetricCases)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildDeltas_LengthIsNMinusOne(t *testing.T) {
	for n := 1; n <= 30; n++ {
		dates := make([]string, n)
		vals := make([]int64, n)
		for i := range dates {
			dates[i] = "day-" + string(rune('A'+i))
			vals[i] = int64(i * i)
		}
		got, err := BuildDeltas(makeSeries(dates, vals), model.MetricDeaths)
		require.NoError(t, err)
		assert.Len(t, got, n-1, "n=%d", n)
	}
}

func TestBuildDeltas_UsesCasesAxisForOtherMetrics(t *testing.T) {
	s := model.TimeSeriesSnapshot{
		// Axis order is the delivery order of the cases object, not lexical.
		Dates: []string{"12/30/21", "12/31/21", "1/1/22"},
		Values: map[model.Metric]map[string]int64{
			model.MetricCases:     {"12/30/21": 1, "12/31/21": 2, "1/1/22": 3},
			model.MetricDeaths:    {"1/1/22": 9, "12/30/21": 4, "12/31/21": 6},
			model.MetricRecovered: {"12/30/21": 0, "12/31/21": 0, "1/1/22": 0},
		},
	}

	got, err := BuildDeltas(s, model.MetricDeaths)
	require.NoError(t, err)
	assert.Equal(t, []model.ChartPoint{{X: "12/31/21", Y: 2}, {X: "1/1/22", Y: 3}}, got)
}

func TestBuildDeltas_ZeroFirstValueStillSeeds(t *testing.T) {
	s := makeSeries([]string{"d1", "d2", "d3"}, []int64{0, 0, 7})

	got, err := BuildDeltas(s, model.MetricRecovered)
	require.NoError(t, err)
	assert.Equal(t, []model.ChartPoint{{X: "d2", Y: 0}, {X: "d3", Y: 7}}, got)
}

func TestBuildDeltas_MissingPointFailsThatPointOnly(t *testing.T) {
	s := model.TimeSeriesSnapshot{
		Dates: []string{"d1", "d2", "d3", "d4", "d5"},
		Values: map[model.Metric]map[string]int64{
			model.MetricCases:  {"d1": 1, "d2": 2, "d3": 3, "d4": 4, "d5": 5},
			model.MetricDeaths: {"d1": 10, "d2": 12, "d4": 20, "d5": 21},
		},
	}

	got, err := BuildDeltas(s, model.MetricDeaths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedInput))

	var missing *model.MissingDataPointError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "d3", missing.Date)
	assert.Equal(t, model.MetricDeaths, missing.Metric)

	// d3 is missing, d4 only re-seeds the baseline.
	assert.Equal(t, []model.ChartPoint{{X: "d2", Y: 2}, {X: "d5", Y: 1}}, got)
}

func TestBuildDeltas_AbsentMetricReportsEveryDate(t *testing.T) {
	s := model.TimeSeriesSnapshot{
		Dates:  []string{"d1", "d2"},
		Values: map[model.Metric]map[string]int64{model.MetricCases: {"d1": 1, "d2": 2}},
	}

	got, err := BuildDeltas(s, model.MetricRecovered)
	assert.Empty(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"d1"`)
	assert.Contains(t, err.Error(), `"d2"`)
}

func TestBuildDeltas_UnknownMetric(t *testing.T) {
	got, err := BuildDeltas(makeSeries([]string{"d1", "d2"}, []int64{1, 2}), model.Metric("active"))
	assert.ErrorIs(t, err, model.ErrMalformedInput)
	assert.Nil(t, got)
}

func TestDeltaValues(t *testing.T) {
	got := DeltaValues([]model.ChartPoint{{X: "a", Y: 5}, {X: "b", Y: -3}})
	assert.Equal(t, []float64{5, -3}, got)
	assert.Empty(t, DeltaValues(nil))
}
