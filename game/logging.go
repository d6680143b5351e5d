package game

import "log/slog"

// Progress lines fire on two cadences: every LogEveryTicks ticks, and
// every 100 regions admitted or stopped, whichever comes first. The
// count-based trigger keeps the log responsive during subdivision
// storms when thousands of regions turn over between tick milestones.
const progressEventBatch = 100

func (g *Game) logProgress() {
	cadence := g.cfg.Run.LogEveryTicks
	byTicks := cadence > 0 && g.tick%int32(cadence) == 0
	byEvents := g.admittedSinceLog+g.stoppedSinceLog >= progressEventBatch

	if !byTicks && !byEvents {
		return
	}
	g.admittedSinceLog = 0
	g.stoppedSinceLog = 0

	slog.Info("progress",
		"tick", g.tick,
		"sim_time_sec", g.simTime(),
		"active", len(g.activeSet),
		"queued", len(g.queue),
		"flipped", g.flipped,
		"timed_out", g.timedOut,
		"total_regions", g.totalRegions,
		"max_depth", g.depthTracker.MaxDepth(),
		"stopped_area_pct", float64(g.stoppedArea)/float64(g.canvasArea),
	)
}
