package game

import (
	"log/slog"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/telemetry"
)

// simulationStep advances the whole grid by one tick. Phase order
// matters: outcomes are written before the subdivider compares
// neighbors, so two regions stopping on the same tick see each other,
// and children spawned by splits are painted in the same tick their
// parent disappears.
func (g *Game) simulationStep() {
	g.tick++
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	g.integrateActive()

	g.perfCollector.StartPhase(telemetry.PhaseOutcomes)
	events := g.applyOutcomes()

	g.perfCollector.StartPhase(telemetry.PhaseSubdivide)
	marks := g.subdivider.Collect(events, g.index)
	g.applySplits(marks)

	g.perfCollector.StartPhase(telemetry.PhaseAdmit)
	g.admitQueued()

	g.perfCollector.StartPhase(telemetry.PhasePaint)
	g.paintRegions()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.writePendingSnapshots()
	g.logProgress()

	g.perfCollector.EndTick()

	if !g.finished && len(g.activeSet) == 0 && len(g.queue) == 0 {
		g.finished = true
		slog.Info("grid settled",
			"tick", g.tick,
			"sim_time_sec", g.simTime(),
			"regions", g.totalRegions,
			"flipped", g.flipped,
			"timed_out", g.timedOut,
			"max_depth", g.depthTracker.MaxDepth(),
		)
	}
}

// paintRegions refreshes the canvas. Running regions repaint every tick
// because their hue tracks the live outer-arm angle; stopped regions
// paint exactly once more, on the tick their Dirty flag was set.
func (g *Game) paintRegions() {
	query := g.regionFilter.Query()
	for query.Next() {
		rect, pen, reg := query.Get()

		switch {
		case reg.Status == components.StatusRunning:
			col := renderer.RunningColor(pen.State.Theta2)
			g.canvas.Paint(rect.X, rect.Y, rect.W, rect.H, col)
			reg.Dirty = false
		case reg.Dirty:
			g.canvas.Paint(rect.X, rect.Y, rect.W, rect.H, reg.Color)
			reg.Dirty = false
		}
	}
	g.canvas.Flush()
}

// simTime is the driver clock in simulated seconds. Individual regions
// admitted late carry less elapsed time than this.
func (g *Game) simTime() float64 {
	return float64(g.tick) * g.cfg.Derived.TickSimSeconds
}
