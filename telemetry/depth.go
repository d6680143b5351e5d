package telemetry

import "log/slog"

// DepthRecord marks the first tick at which a subdivision depth
// appeared on the grid.
type DepthRecord struct {
	Depth      int     `csv:"depth"`
	Tick       int32   `csv:"tick"`
	SimTimeSec float64 `csv:"sim_time"`
	Regions    int     `csv:"total_regions"`
}

// LogRecord logs the depth record using slog.
func (r DepthRecord) LogRecord() {
	slog.Info("depth_reached",
		"depth", r.Depth,
		"tick", r.Tick,
		"sim_time", r.SimTimeSec,
		"total_regions", r.Regions,
	)
}

// DepthTracker remembers which subdivision depths have appeared so the
// first arrival at each depth is recorded exactly once. The root
// region's depth zero counts as seen from the start.
type DepthTracker struct {
	maxSeen int
	records []DepthRecord
}

// NewDepthTracker creates a tracker with the root depth already seen.
func NewDepthTracker() *DepthTracker {
	return &DepthTracker{}
}

// Observe reports a region existing at the given depth. It returns a
// record when the depth is newly reached, nil otherwise. Splits deepen
// the grid one level at a time, so a single record suffices.
func (dt *DepthTracker) Observe(depth int, tick int32, simTime float64, totalRegions int) *DepthRecord {
	if depth <= dt.maxSeen {
		return nil
	}
	dt.maxSeen = depth
	rec := DepthRecord{
		Depth:      depth,
		Tick:       tick,
		SimTimeSec: simTime,
		Regions:    totalRegions,
	}
	dt.records = append(dt.records, rec)
	return &rec
}

// MaxDepth returns the deepest subdivision level seen so far.
func (dt *DepthTracker) MaxDepth() int {
	return dt.maxSeen
}

// Records returns all depth records in order of appearance.
func (dt *DepthTracker) Records() []DepthRecord {
	return dt.records
}
