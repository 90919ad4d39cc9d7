package engine

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dm/ctrack/internal/client"
)

// MockStatsClient implements client.StatsClient for testing.
type MockStatsClient struct {
	WorldwideFn  func(ctx context.Context) (*client.RegionStats, error)
	CountriesFn  func(ctx context.Context) ([]client.RegionStats, error)
	CountryFn    func(ctx context.Context, query string) (*client.RegionStats, error)
	HistoricalFn func(ctx context.Context, query string, lastDays int) (*client.Timeline, error)
}

func (m *MockStatsClient) GetWorldwide(ctx context.Context) (*client.RegionStats, error) {
	if m.WorldwideFn != nil {
		return m.WorldwideFn(ctx)
	}
	return &client.RegionStats{Cases: i64(1000), TodayCases: i64(10)}, nil
}

func (m *MockStatsClient) GetCountries(ctx context.Context) ([]client.RegionStats, error) {
	if m.CountriesFn != nil {
		return m.CountriesFn(ctx)
	}
	return []client.RegionStats{
		{Country: str("Testland"), Cases: i64(500), CountryInfo: &client.CountryInfo{ISO2: str("TL")}},
	}, nil
}

func (m *MockStatsClient) GetCountry(ctx context.Context, query string) (*client.RegionStats, error) {
	if m.CountryFn != nil {
		return m.CountryFn(ctx, query)
	}
	return &client.RegionStats{Country: str("Testland"), Cases: i64(500)}, nil
}

func (m *MockStatsClient) GetHistorical(ctx context.Context, query string, lastDays int) (*client.Timeline, error) {
	if m.HistoricalFn != nil {
		return m.HistoricalFn(ctx, query, lastDays)
	}
	return &client.Timeline{
		Cases:     counts("1/1/22", "10", "1/2/22", "15"),
		Deaths:    counts("1/1/22", "1", "1/2/22", "1"),
		Recovered: counts("1/1/22", "0", "1/2/22", "4"),
	}, nil
}

func (m *MockStatsClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockStatsClient) BaseURL() string {
	return "http://mock"
}

func i64(n int64) *int64 { return &n }

func str(s string) *string { return &s }

// counts builds DatedCounts from alternating date, count pairs.
func counts(pairs ...string) *client.DatedCounts {
	out := make(client.DatedCounts, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, client.DatedCount{Date: pairs[i], Count: json.Number(pairs[i+1])})
	}
	return &out
}

var errMockFailure = errors.New("mock failure")
