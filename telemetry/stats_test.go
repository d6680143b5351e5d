package telemetry

import (
	"math"
	"testing"
)

func TestComputeFlipTimeStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, p10, p50, p90 := ComputeFlipTimeStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}

	// Quantiles must be ordered and bounded by the sample range
	if p10 > p50 || p50 > p90 {
		t.Errorf("quantiles out of order: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p10 < 1 || p90 > 10 {
		t.Errorf("quantiles outside sample range: p10=%v p90=%v", p10, p90)
	}
	if p50 < 4.5 || p50 > 6 {
		t.Errorf("p50 = %v, want near the middle of 1..10", p50)
	}
}

func TestComputeFlipTimeStatsUnsortedInput(t *testing.T) {
	shuffled := []float64{7, 2, 9, 1, 5}
	ordered := []float64{1, 2, 5, 7, 9}

	m1, a1, b1, c1 := ComputeFlipTimeStats(shuffled)
	m2, a2, b2, c2 := ComputeFlipTimeStats(ordered)

	if m1 != m2 || a1 != a2 || b1 != b2 || c1 != c2 {
		t.Error("stats should not depend on input order")
	}
}

func TestComputeFlipTimeStatsSingleValue(t *testing.T) {
	mean, p10, p50, p90 := ComputeFlipTimeStats([]float64{3.7})

	if mean != 3.7 || p10 != 3.7 || p50 != 3.7 || p90 != 3.7 {
		t.Errorf("single value should dominate all stats, got %v %v %v %v", mean, p10, p50, p90)
	}
}

func TestComputeFlipTimeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeFlipTimeStats(nil)

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(100, 1.2)

	if c.ShouldFlush(50) {
		t.Error("window should not flush halfway through")
	}
	if !c.ShouldFlush(100) {
		t.Error("window should flush at the boundary")
	}

	c.Flush(100, RegionCensus{})
	if c.ShouldFlush(150) {
		t.Error("flush should start a fresh window")
	}
	if !c.ShouldFlush(200) {
		t.Error("second window should flush at its own boundary")
	}
}

func TestCollectorFlushAggregatesAndResets(t *testing.T) {
	c := NewCollector(10, 1.2)

	c.RecordFlip(1.0)
	c.RecordFlip(2.0)
	c.RecordFlip(3.0)
	c.RecordTimeout()
	c.RecordSplit()
	c.RecordSplit()
	c.RecordTerminalLeaf()
	c.RecordAdmission()

	census := RegionCensus{
		Active:         5,
		Queued:         2,
		Flipped:        3,
		TimedOut:       1,
		Total:          11,
		MaxDepth:       2,
		StoppedAreaPct: 0.25,
	}
	stats := c.Flush(10, census)

	if stats.Flips != 3 || stats.Timeouts != 1 {
		t.Errorf("expected 3 flips and 1 timeout, got %d and %d", stats.Flips, stats.Timeouts)
	}
	if stats.Splits != 2 || stats.TerminalLeaves != 1 || stats.Admissions != 1 {
		t.Errorf("unexpected event counts: %+v", stats)
	}
	if math.Abs(stats.FlipRate-0.75) > 0.001 {
		t.Errorf("flip rate = %v, want 0.75", stats.FlipRate)
	}
	if math.Abs(stats.FlipTimeMean-2.0) > 0.001 {
		t.Errorf("flip time mean = %v, want 2.0", stats.FlipTimeMean)
	}
	if stats.Active != 5 || stats.Queued != 2 || stats.Total != 11 {
		t.Errorf("census not carried through: %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-12.0) > 0.001 {
		t.Errorf("sim time = %v, want 12.0", stats.SimTimeSec)
	}

	// Counters reset for the next window
	next := c.Flush(20, RegionCensus{})
	if next.Flips != 0 || next.Timeouts != 0 || next.Splits != 0 || next.Admissions != 0 {
		t.Errorf("counters should reset after flush: %+v", next)
	}
	if next.FlipTimeMean != 0 {
		t.Errorf("flip time samples should reset, got mean %v", next.FlipTimeMean)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("next window should start at 10, got %d", next.WindowStartTick)
	}
}

func TestCollectorFlipRateWithNoStops(t *testing.T) {
	c := NewCollector(10, 1.2)
	stats := c.Flush(10, RegionCensus{})

	if stats.FlipRate != 0 {
		t.Errorf("flip rate with no stops should be 0, got %v", stats.FlipRate)
	}
}
