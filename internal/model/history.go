package model

import "time"

const defaultHistoryCap = 60

// TodayPoint is a single timestamped sample of today's counts, stored in the
// ring buffer once per successful poll.
type TodayPoint struct {
	Timestamp      time.Time
	TodayCases     int64
	TodayDeaths    int64
	TodayRecovered int64
}

// DeltaHistory is a fixed-size ring buffer of TodayPoints.
// When the buffer is full, new pushes overwrite the oldest entry.
type DeltaHistory struct {
	buf  []TodayPoint
	head int // index of the next write position
	size int // number of valid entries
}

// NewDeltaHistory creates a DeltaHistory with the given capacity.
// If capacity <= 0, defaultHistoryCap (60) is used.
func NewDeltaHistory(capacity int) *DeltaHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &DeltaHistory{
		buf: make([]TodayPoint, capacity),
	}
}

// Push appends a new point to the history, overwriting the oldest if full.
func (h *DeltaHistory) Push(p TodayPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries in the history.
func (h *DeltaHistory) Len() int {
	return h.size
}

// Clear resets the history to empty.
func (h *DeltaHistory) Clear() {
	h.head = 0
	h.size = 0
}

// Values returns today's counts of metric m in chronological order (oldest
// first). An unknown metric yields zeros.
func (h *DeltaHistory) Values(m Metric) []float64 {
	out := make([]float64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		p := h.buf[(start+i)%len(h.buf)]
		switch m {
		case MetricCases:
			out[i] = float64(p.TodayCases)
		case MetricDeaths:
			out[i] = float64(p.TodayDeaths)
		case MetricRecovered:
			out[i] = float64(p.TodayRecovered)
		}
	}
	return out
}

// PointFromSummary builds a TodayPoint from a summary; absent counts are 0.
func PointFromSummary(s RegionSummary, at time.Time) TodayPoint {
	return TodayPoint{
		Timestamp:      at,
		TodayCases:     deref(s.TodayCases),
		TodayDeaths:    deref(s.TodayDeaths),
		TodayRecovered: deref(s.TodayRecovered),
	}
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
