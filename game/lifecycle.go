package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/systems"
	"github.com/pthm-cable/flipfield/telemetry"
)

// applyOutcomes writes the integration results back into the world and
// retires regions that stopped this tick. Stop events come out in
// snapshot order, which is admission order, so downstream consumers see
// a deterministic sequence. Runs serially.
func (g *Game) applyOutcomes() []systems.StopEvent {
	g.stopEvents = g.stopEvents[:0]
	keep := g.activeSet[:0]

	for i := range g.parallel.snapshots {
		snap := &g.parallel.snapshots[i]
		out := &g.parallel.outcomes[i]

		pen := g.penMap.Get(snap.Entity)
		if pen == nil {
			continue
		}
		pen.State = out.State
		pen.Detector = out.Detector
		pen.Elapsed = out.Elapsed

		if !out.Stopped {
			keep = append(keep, snap.Entity)
			continue
		}

		rect := g.rectMap.Get(snap.Entity)
		reg := g.regionMap.Get(snap.Entity)

		reg.Status = out.Status
		reg.Dirty = true

		switch out.Status {
		case components.StatusFlipped:
			reg.FlipTime = out.FlipTime
			reg.Color = renderer.FlippedColor(out.FlipTime, g.cfg.Color.FlipHueRate)
			g.flipped++
			g.collector.RecordFlip(out.FlipTime)
			g.considerForHall(*rect, reg, out.FlipTime)
		case components.StatusTimedOut:
			reg.Color = renderer.TimedOutColor(g.cfg.Color.TimeoutGray)
			g.timedOut++
			g.collector.RecordTimeout()
		}

		g.stoppedArea += rect.Area()
		g.stoppedSinceLog++

		g.stopEvents = append(g.stopEvents, systems.StopEvent{
			Entity:   snap.Entity,
			Rect:     *rect,
			Status:   out.Status,
			FlipTime: reg.FlipTime,
		})
	}

	g.activeSet = keep
	return g.stopEvents
}

// applySplits replaces each marked region with its four quadrants.
// Regions too small to split stay as terminal leaves and keep their
// stopped color. Children cover exactly the parent's rect, so the
// tiling stays exact through every split.
func (g *Game) applySplits(marks []ecs.Entity) {
	for _, e := range marks {
		rect := g.rectMap.Get(e)
		reg := g.regionMap.Get(e)
		if rect == nil || reg == nil {
			continue
		}

		if !rect.Splittable(g.cfg.Subdivision.MinRegionPx) {
			g.collector.RecordTerminalLeaf()
			continue
		}

		parentRect := *rect
		childDepth := reg.Depth + 1

		switch reg.Status {
		case components.StatusFlipped:
			g.flipped--
		case components.StatusTimedOut:
			g.timedOut--
		}
		g.stoppedArea -= parentRect.Area()
		g.totalRegions--
		g.world.RemoveEntity(e)

		for _, q := range parentRect.Quadrants() {
			g.spawnRegion(q, childDepth)
		}

		g.splits++
		g.collector.RecordSplit()
		g.observeDepth(int(childDepth))
	}
}

// observeDepth feeds the depth tracker and, on a new maximum, logs the
// milestone and schedules a canvas snapshot for after the paint phase.
func (g *Game) observeDepth(depth int) {
	rec := g.depthTracker.Observe(depth, g.tick, g.simTime(), g.totalRegions)
	if rec == nil {
		return
	}
	rec.LogRecord()
	if g.outputManager != nil {
		if err := g.outputManager.WriteDepth(*rec); err != nil {
			slog.Error("failed to write depth record", "error", err)
		}
	}
	if g.snapshotDir != "" {
		g.pendingSnapshots = append(g.pendingSnapshots, *rec)
	}
}

// admitQueued moves queued regions into the active set until it is
// full. FIFO order keeps sibling groups together and makes admission
// order reproducible across runs.
func (g *Game) admitQueued() {
	maxActive := g.cfg.Subdivision.MaxActive

	n := 0
	for _, e := range g.queue {
		if len(g.activeSet) < maxActive {
			g.activeSet = append(g.activeSet, e)
			g.collector.RecordAdmission()
			g.admittedSinceLog++
		} else {
			g.queue[n] = e
			n++
		}
	}
	g.queue = g.queue[:n]
}

// considerForHall offers a flipped region to the hall of fame. The seed
// angles are re-derived from the rect so an entry is enough to replay
// the pendulum.
func (g *Game) considerForHall(rect components.Rect, reg *components.Region, flipTime float64) {
	if g.hallOfFame == nil {
		return
	}
	seed := seedPendulum(rect, g.cfg)
	accepted := g.hallOfFame.Consider(telemetry.HallEntry{
		FlipTime: flipTime,
		Tick:     g.tick,
		Depth:    int(reg.Depth),
		X:        rect.X,
		Y:        rect.Y,
		W:        rect.W,
		H:        rect.H,
		Theta1:   seed.State.Theta1,
		Theta2:   seed.State.Theta2,
	})
	if accepted {
		slog.Debug("hall of fame entry",
			"flip_time", flipTime,
			"depth", reg.Depth,
			"x", rect.X,
			"y", rect.Y,
		)
	}
}
