package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/telemetry"
)

// census returns the current region population by status.
func (g *Game) census() telemetry.RegionCensus {
	return telemetry.RegionCensus{
		Active:         len(g.activeSet),
		Queued:         len(g.queue),
		Flipped:        g.flipped,
		TimedOut:       g.timedOut,
		Total:          g.totalRegions,
		MaxDepth:       g.depthTracker.MaxDepth(),
		StoppedAreaPct: float64(g.stoppedArea) / float64(g.canvasArea),
	}
}

// flushTelemetry closes the stats window when it is due and routes the
// result to every consumer: log, CSV files, the trend panel, and the
// monitor callback.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.census())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
	if g.trendPanel != nil {
		g.trendPanel.Update(stats)
	}

	g.lastWindow = stats
	g.hasWindow = true
}

// writePendingSnapshots flushes depth-milestone PNGs. They queue up
// during the subdivide phase and are written here, after paint, so the
// new children are visible in the image.
func (g *Game) writePendingSnapshots() {
	if len(g.pendingSnapshots) == 0 {
		return
	}
	for _, rec := range g.pendingSnapshots {
		path := filepath.Join(g.snapshotDir, fmt.Sprintf("depth_%02d.png", rec.Depth))
		if err := renderer.WritePNG(path, g.canvas); err != nil {
			slog.Error("failed to write depth snapshot", "path", path, "error", err)
			continue
		}
		slog.Info("depth snapshot written", "path", path, "depth", rec.Depth, "tick", rec.Tick)
	}
	g.pendingSnapshots = g.pendingSnapshots[:0]
}

// Shutdown writes the end-of-run artifacts and stops the worker pool.
// Safe to call once, after the run loop exits.
func (g *Game) Shutdown() {
	if g.snapshotDir != "" {
		path := filepath.Join(g.snapshotDir, "final.png")
		if err := renderer.WritePNG(path, g.canvas); err != nil {
			slog.Error("failed to write final snapshot", "path", path, "error", err)
		} else {
			slog.Info("final snapshot written", "path", path, "tick", g.tick)
		}
	}

	if g.outputManager != nil {
		if g.hallOfFame != nil && g.hallOfFame.Size() > 0 {
			if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
				slog.Error("failed to write hall of fame", "error", err)
			}
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}

	slog.Info("run complete",
		"tick", g.tick,
		"sim_time_sec", g.simTime(),
		"regions", g.totalRegions,
		"flipped", g.flipped,
		"timed_out", g.timedOut,
		"max_depth", g.depthTracker.MaxDepth(),
		"settled", g.finished,
	)

	g.stopParallelWorkers()
}
