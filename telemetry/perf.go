package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase names for the simulation tick.
const (
	PhaseIntegrate = "integrate"
	PhaseOutcomes  = "outcomes"
	PhaseSubdivide = "subdivide"
	PhaseAdmit     = "admit"
	PhasePaint     = "paint"
	PhaseTelemetry = "telemetry"
)

// tickPhases orders the phases as they run inside a tick. Timings are
// stored by slot index so the per-tick path allocates nothing.
var tickPhases = [...]string{
	PhaseIntegrate,
	PhaseOutcomes,
	PhaseSubdivide,
	PhaseAdmit,
	PhasePaint,
	PhaseTelemetry,
}

const numPhases = len(tickPhases)

func phaseSlot(name string) int {
	for i, p := range tickPhases {
		if p == name {
			return i
		}
	}
	return -1
}

// perfSample holds the timing of one tick.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times ticks and their phases over a rolling window.
type PerfCollector struct {
	ring   []perfSample
	cursor int
	filled int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int

	// Frame timing (windowed mode)
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]perfSample, windowSize),
		phase: -1,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.phase = -1
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseSlot(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and stores its sample in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1

	p.current.tick = now.Sub(p.tickStart)
	p.ring[p.cursor] = p.current
	p.cursor = (p.cursor + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame records frame timing for windowed mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations and percentages of tick time)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing (windowed mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window. Phases that
// never ran are absent from the phase maps.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	var phaseTotal [numPhases]time.Duration
	stats.MinTickDuration = p.ring[0].tick
	for i := 0; i < p.filled; i++ {
		s := &p.ring[i]
		total += s.tick
		if s.tick < stats.MinTickDuration {
			stats.MinTickDuration = s.tick
		}
		if s.tick > stats.MaxTickDuration {
			stats.MaxTickDuration = s.tick
		}
		for j, d := range s.phases {
			phaseTotal[j] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgTickDuration = total / n
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}

	for j, name := range tickPhases {
		avg := phaseTotal[j] / n
		if avg == 0 {
			continue
		}
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}

	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range tickPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", math.Round(pct*10)/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	IntegratePct float64 `csv:"integrate_pct"`
	OutcomesPct  float64 `csv:"outcomes_pct"`
	SubdividePct float64 `csv:"subdivide_pct"`
	AdmitPct     float64 `csv:"admit_pct"`
	PaintPct     float64 `csv:"paint_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		IntegratePct: s.PhasePct[PhaseIntegrate],
		OutcomesPct:  s.PhasePct[PhaseOutcomes],
		SubdividePct: s.PhasePct[PhaseSubdivide],
		AdmitPct:     s.PhasePct[PhaseAdmit],
		PaintPct:     s.PhasePct[PhasePaint],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
