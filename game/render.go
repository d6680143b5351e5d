package game

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/inspector"
	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/systems"
	"github.com/pthm-cable/flipfield/telemetry"
	"github.com/pthm-cable/flipfield/ui"
)

var phaseOrder = []string{
	telemetry.PhaseIntegrate,
	telemetry.PhaseOutcomes,
	telemetry.PhaseSubdivide,
	telemetry.PhaseAdmit,
	telemetry.PhasePaint,
	telemetry.PhaseTelemetry,
}

const controlsHint = "Space pause | , . speed | arrows pan | wheel/+/- zoom | Home reset | D overlays | N trends | Tab palette | S screenshot | click to inspect"

// Draw renders one frame: the canvas under the camera transform, then
// overlays in world space, then panels in screen space.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.presenter.Upload(g.canvas)
	ox, oy := g.camera.WorldToScreen(0, 0)
	g.presenter.Draw(ox, oy, g.camera.Zoom)

	g.drawOverlays()
	g.inspector.DrawSelectionHighlight(g.world, g.rectMap, g.penMap, g.regionMap, g.camera)

	g.drawHUD()
	g.drawPanels()
	g.inspector.Draw(g.world, g.rectMap, g.penMap, g.regionMap,
		g.cfg.Subdivision.MinRegionPx, g.cfg.Integration.MaxSimTime,
		g.cfg.Subdivision.FlipTimeThreshold, g.neighborFlips())

	rl.EndDrawing()
}

// neighborFlips resolves the selected region's four neighbors into the
// inspector's comparison rows.
func (g *Game) neighborFlips() []inspector.NeighborFlip {
	e, ok := g.inspector.Selected()
	if !ok || !g.world.Alive(e) {
		return nil
	}
	rect := g.rectMap.Get(e)
	if rect == nil {
		return nil
	}

	names := [4]string{
		systems.DirUp:    "up",
		systems.DirDown:  "down",
		systems.DirLeft:  "left",
		systems.DirRight: "right",
	}
	ents, present := g.index.Neighbors(*rect)

	rows := make([]inspector.NeighborFlip, 0, len(ents))
	for dir, ne := range ents {
		row := inspector.NeighborFlip{Dir: names[dir]}
		if present[dir] && g.world.Alive(ne) {
			if reg := g.regionMap.Get(ne); reg != nil {
				row.Present = true
				row.Status = reg.Status
				row.FlipTime = reg.FlipTime
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Game) drawHUD() {
	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Window.Title,
		Active:       len(g.activeSet),
		Queued:       len(g.queue),
		Flipped:      g.flipped,
		TimedOut:     g.timedOut,
		Splits:       g.splits,
		TotalRegions: g.totalRegions,
		MaxDepth:     g.depthTracker.MaxDepth(),
		Tick:         g.tick,
		SimTime:      g.simTime(),
		Speed:        g.ticksPerFrame,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Finished:     g.finished,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsHint)
}

func (g *Game) drawPanels() {
	ps := g.perfCollector.Stats()
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseAvg: ps.PhaseAvg,
		PhasePct: ps.PhasePct,
		Total:    ps.AvgTickDuration,
		Order:    phaseOrder,
	})

	g.hallPanel.Draw(g.hallPanelData())
	g.controlsPanel.Draw(g.overlays)
	g.palettePanel.Draw(g.paletteData)

	if g.hasWindow {
		g.quickStats.Draw(ui.QuickStatsData{
			FlipRate:       g.lastWindow.FlipRate,
			MedianFlipTime: g.lastWindow.FlipTimeP50,
			StoppedAreaPct: g.lastWindow.StoppedAreaPct,
			SplitsInWindow: g.lastWindow.Splits,
		})
	}

	if g.showTrend {
		g.trendPanel.Draw()
	}
}

func (g *Game) hallPanelData() ui.HallPanelData {
	data := ui.HallPanelData{
		TotalStopped: g.flipped + g.timedOut,
		ShowMarkers:  g.overlays.IsEnabled(ui.OverlayHallMarkers),
	}
	if g.hallOfFame == nil {
		return data
	}
	for i, entry := range g.hallOfFame.Entries() {
		if i >= 5 {
			break
		}
		data.Entries = append(data.Entries, ui.HallEntryInfo{
			Rank:     i + 1,
			FlipTime: entry.FlipTime,
			Depth:    entry.Depth,
			X:        entry.X,
			Y:        entry.Y,
			Color:    toRaylib(renderer.FlippedColor(entry.FlipTime, g.cfg.Color.FlipHueRate)),
		})
	}
	return data
}

func toRaylib(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// buildPaletteData samples the three color mappings into legend ramps.
// The mappings depend only on the configuration, so this runs once.
func buildPaletteData(cfg *config.Config) ui.PalettePanelData {
	const samples = 64

	data := ui.PalettePanelData{
		HueCycleSec:  360 / cfg.Color.FlipHueRate,
		TimeoutColor: toRaylib(renderer.TimedOutColor(cfg.Color.TimeoutGray)),
	}
	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		data.RunningRamp = append(data.RunningRamp, toRaylib(renderer.RunningColor(theta)))

		t := data.HueCycleSec * float64(i) / samples
		data.FlipRamp = append(data.FlipRamp, toRaylib(renderer.FlippedColor(t, cfg.Color.FlipHueRate)))
	}
	return data
}
