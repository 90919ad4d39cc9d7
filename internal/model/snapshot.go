package model

import "time"

// Snapshot holds the validated results of a single poll cycle.
type Snapshot struct {
	Selection Selection
	Summary   RegionSummary
	Countries []CountrySnapshot
	Series    TimeSeriesSnapshot
	// SeriesErr is set when the history could not be fetched or validated.
	// Series is then empty while Summary and Countries are still valid.
	SeriesErr error
	FetchedAt time.Time
}
