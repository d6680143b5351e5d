package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a telemetry window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Region census at window end
	Active   int `csv:"active"`
	Queued   int `csv:"queued"`
	Flipped  int `csv:"flipped"`
	TimedOut int `csv:"timed_out"`
	Total    int `csv:"total_regions"`
	MaxDepth int `csv:"max_depth"`

	// Events during the window
	Flips          int `csv:"flips"`
	Timeouts       int `csv:"timeouts"`
	Splits         int `csv:"splits"`
	TerminalLeaves int `csv:"terminal_leaves"`
	Admissions     int `csv:"admissions"`

	// Share of stops in this window that were flips
	FlipRate float64 `csv:"flip_rate"`

	// Flip time distribution over flips in this window
	FlipTimeMean float64 `csv:"flip_time_mean"`
	FlipTimeP10  float64 `csv:"flip_time_p10"`
	FlipTimeP50  float64 `csv:"flip_time_p50"`
	FlipTimeP90  float64 `csv:"flip_time_p90"`

	// Fraction of canvas area owned by stopped regions
	StoppedAreaPct float64 `csv:"stopped_area_pct"`
}

// ComputeFlipTimeStats calculates mean and quantiles from flip times.
func ComputeFlipTimeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Quantile requires sorted input
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active", s.Active),
		slog.Int("queued", s.Queued),
		slog.Int("flipped", s.Flipped),
		slog.Int("timed_out", s.TimedOut),
		slog.Int("total_regions", s.Total),
		slog.Int("max_depth", s.MaxDepth),
		slog.Int("flips", s.Flips),
		slog.Int("timeouts", s.Timeouts),
		slog.Int("splits", s.Splits),
		slog.Int("terminal_leaves", s.TerminalLeaves),
		slog.Int("admissions", s.Admissions),
		slog.Float64("flip_rate", s.FlipRate),
		slog.Float64("flip_time_mean", s.FlipTimeMean),
		slog.Float64("flip_time_p10", s.FlipTimeP10),
		slog.Float64("flip_time_p50", s.FlipTimeP50),
		slog.Float64("flip_time_p90", s.FlipTimeP90),
		slog.Float64("stopped_area_pct", s.StoppedAreaPct),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"active", s.Active,
		"queued", s.Queued,
		"flipped", s.Flipped,
		"timed_out", s.TimedOut,
		"total_regions", s.Total,
		"max_depth", s.MaxDepth,
		"flips", s.Flips,
		"timeouts", s.Timeouts,
		"splits", s.Splits,
		"terminal_leaves", s.TerminalLeaves,
		"admissions", s.Admissions,
		"flip_rate", s.FlipRate,
		"flip_time_mean", s.FlipTimeMean,
		"flip_time_p10", s.FlipTimeP10,
		"flip_time_p50", s.FlipTimeP50,
		"flip_time_p90", s.FlipTimeP90,
		"stopped_area_pct", s.StoppedAreaPct,
	)
}
