package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/ctrack/internal/client"
	"github.com/dm/ctrack/internal/model"
)

// DefaultLastDays is the history window requested when none is configured.
const DefaultLastDays = 120

// FetchDashboard calls the summary, country list, and history endpoints
// concurrently for sel and validates the results into a Snapshot. A failed
// summary or country list fails the whole fetch. A failed or malformed
// history does not: the Snapshot is returned with an empty Series and the
// cause in SeriesErr, since many listed regions have no history upstream.
func FetchDashboard(ctx context.Context, c client.StatsClient, sel model.Selection, lastDays int) (*model.Snapshot, error) {
	var (
		summary   *client.RegionStats
		countries []client.RegionStats
		timeline  *client.Timeline
		histErr   error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if sel.IsWorldwide() {
			summary, err = c.GetWorldwide(gctx)
		} else {
			summary, err = c.GetCountry(gctx, sel.Query())
		}
		return err
	})

	g.Go(func() error {
		var err error
		countries, err = c.GetCountries(gctx)
		return err
	})

	g.Go(func() error {
		timeline, histErr = c.GetHistorical(gctx, sel.Query(), lastDays)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summary == nil {
		return nil, fmt.Errorf("FetchDashboard: incomplete response (unexpected nil)")
	}

	records, err := CountriesFromStats(countries)
	if err != nil {
		return nil, fmt.Errorf("FetchDashboard countries: %w", err)
	}

	var series model.TimeSeriesSnapshot
	switch {
	case histErr != nil:
		histErr = fmt.Errorf("FetchDashboard history: %w", histErr)
	case timeline == nil:
		histErr = fmt.Errorf("FetchDashboard history: %w: empty payload", model.ErrMalformedInput)
	default:
		if series, err = SeriesFromTimeline(*timeline); err != nil {
			series, histErr = model.TimeSeriesSnapshot{}, fmt.Errorf("FetchDashboard history: %w", err)
		}
	}

	return &model.Snapshot{
		Selection: sel,
		Summary:   SummaryFromStats(*summary, sel),
		Countries: records,
		Series:    series,
		SeriesErr: histErr,
		FetchedAt: time.Now(),
	}, nil
}
