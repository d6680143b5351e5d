// Package telemetry provides windowed run statistics, performance
// timing, depth milestones, and structured experiment output.
package telemetry

// RegionCensus holds grid-wide counts sampled at a window boundary.
// The caller (the tick driver) owns the grid and fills these in.
type RegionCensus struct {
	Active         int
	Queued         int
	Flipped        int
	TimedOut       int
	Total          int
	MaxDepth       int
	StoppedAreaPct float64
}

// Collector accumulates stop, split, and scheduler events within tick
// windows and produces WindowStats.
type Collector struct {
	windowTicks   int32
	simSecPerTick float64

	windowStartTick int32

	// Event counters for the current window
	flips          int
	timeouts       int
	splits         int
	terminalLeaves int
	admissions     int
	flipTimes      []float64
}

// NewCollector creates a stats collector.
// windowTicks: how many ticks each stats window lasts.
// simSecPerTick: simulated seconds a running region advances per tick.
func NewCollector(windowTicks int32, simSecPerTick float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:   windowTicks,
		simSecPerTick: simSecPerTick,
	}
}

// RecordFlip records a region stopping with a flip at the given
// simulated time.
func (c *Collector) RecordFlip(flipTime float64) {
	c.flips++
	c.flipTimes = append(c.flipTimes, flipTime)
}

// RecordTimeout records a region reaching the simulated-time cap
// without flipping.
func (c *Collector) RecordTimeout() {
	c.timeouts++
}

// RecordSplit records a region being replaced by its four children.
func (c *Collector) RecordSplit() {
	c.splits++
}

// RecordTerminalLeaf records a region marked for subdivision that was
// too small to split.
func (c *Collector) RecordTerminalLeaf() {
	c.terminalLeaves++
}

// RecordAdmission records a queued region entering the active set.
func (c *Collector) RecordAdmission() {
	c.admissions++
}

// ShouldFlush returns true if enough ticks have passed to flush the
// current window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats for the closing window and resets the
// counters for the next one.
func (c *Collector) Flush(currentTick int32, census RegionCensus) WindowStats {
	var flipRate float64
	if stops := c.flips + c.timeouts; stops > 0 {
		flipRate = float64(c.flips) / float64(stops)
	}

	mean, p10, p50, p90 := ComputeFlipTimeStats(c.flipTimes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.simSecPerTick,

		Active:   census.Active,
		Queued:   census.Queued,
		Flipped:  census.Flipped,
		TimedOut: census.TimedOut,
		Total:    census.Total,
		MaxDepth: census.MaxDepth,

		Flips:          c.flips,
		Timeouts:       c.timeouts,
		Splits:         c.splits,
		TerminalLeaves: c.terminalLeaves,
		Admissions:     c.admissions,

		FlipRate: flipRate,

		FlipTimeMean: mean,
		FlipTimeP10:  p10,
		FlipTimeP50:  p50,
		FlipTimeP90:  p90,

		StoppedAreaPct: census.StoppedAreaPct,
	}

	// Reset for the next window
	c.windowStartTick = currentTick
	c.flips = 0
	c.timeouts = 0
	c.splits = 0
	c.terminalLeaves = 0
	c.admissions = 0
	c.flipTimes = c.flipTimes[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowTicks
}
