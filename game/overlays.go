package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/inspector"
	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/ui"
)

// Overlay tints by region status.
var (
	tintRunning  = rl.Color{R: 240, G: 210, B: 100, A: 45}
	tintFlipped  = rl.Color{R: 80, G: 200, B: 120, A: 45}
	tintTimedOut = rl.Color{R: 160, G: 160, B: 160, A: 70}
)

// drawOverlays renders every enabled overlay in world space, between
// the canvas and the screen-space panels.
func (g *Game) drawOverlays() {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayGridLines:
			g.drawGridLines()
		case ui.OverlayStatusTint:
			g.drawStatusTint()
		case ui.OverlayDepthShade:
			g.drawDepthShade()
		case ui.OverlayPendulumArms:
			g.drawArmsOverlay()
		case ui.OverlayActiveOutline:
			g.drawActiveOutline()
		case ui.OverlayHallMarkers:
			g.drawHallMarkers()
		}
	}
}

// screenRect projects a region rect into screen space, reporting false
// when it lies entirely outside the viewport.
func (g *Game) screenRect(rect *components.Rect) (x, y, w, h float32, ok bool) {
	minX, minY, maxX, maxY := g.camera.VisibleWorldBounds()
	if float32(rect.X+rect.W) < minX || float32(rect.X) > maxX ||
		float32(rect.Y+rect.H) < minY || float32(rect.Y) > maxY {
		return 0, 0, 0, 0, false
	}
	x, y = g.camera.WorldToScreen(float32(rect.X), float32(rect.Y))
	w = float32(rect.W) * g.camera.Zoom
	h = float32(rect.H) * g.camera.Zoom
	return x, y, w, h, true
}

func (g *Game) drawGridLines() {
	lineColor := rl.Color{R: 255, G: 255, B: 255, A: 40}
	query := g.regionFilter.Query()
	for query.Next() {
		rect, _, _ := query.Get()
		x, y, w, h, ok := g.screenRect(rect)
		if !ok {
			continue
		}
		rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), lineColor)
	}
}

func (g *Game) drawStatusTint() {
	query := g.regionFilter.Query()
	for query.Next() {
		rect, _, reg := query.Get()
		x, y, w, h, ok := g.screenRect(rect)
		if !ok {
			continue
		}
		var tint rl.Color
		switch reg.Status {
		case components.StatusFlipped:
			tint = tintFlipped
		case components.StatusTimedOut:
			tint = tintTimedOut
		default:
			tint = tintRunning
		}
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), tint)
	}
}

// drawDepthShade brightens regions by subdivision depth, making the
// boundary-chasing structure visible regardless of color.
func (g *Game) drawDepthShade() {
	maxDepth := g.depthTracker.MaxDepth()
	if maxDepth == 0 {
		maxDepth = 1
	}
	query := g.regionFilter.Query()
	for query.Next() {
		rect, _, reg := query.Get()
		if reg.Depth == 0 {
			continue
		}
		x, y, w, h, ok := g.screenRect(rect)
		if !ok {
			continue
		}
		alpha := uint8(20 + 140*int(reg.Depth)/maxDepth)
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), rl.Color{R: 255, G: 255, B: 255, A: alpha})
	}
}

// drawArmsOverlay renders a live pendulum diagram inside every running
// region large enough to read one.
func (g *Game) drawArmsOverlay() {
	const minSide = 24

	query := g.regionFilter.Query()
	for query.Next() {
		rect, pen, reg := query.Get()
		if reg.Status != components.StatusRunning {
			continue
		}
		x, y, w, h, ok := g.screenRect(rect)
		if !ok || w < minSide || h < minSide {
			continue
		}
		radius := w
		if h < w {
			radius = h
		}
		inspector.DrawPendulumArms(x+w/2, y+h/2, radius*0.45, pen.State, pen.Params, 230)
	}
}

func (g *Game) drawActiveOutline() {
	outline := rl.Color{R: 255, G: 170, B: 50, A: 200}
	for _, e := range g.activeSet {
		rect := g.rectMap.Get(e)
		if rect == nil {
			continue
		}
		x, y, w, h, ok := g.screenRect(rect)
		if !ok {
			continue
		}
		rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), outline)
	}
}

// drawHallMarkers rings the current hall-of-fame regions on the canvas
// and labels them by rank.
func (g *Game) drawHallMarkers() {
	if g.hallOfFame == nil {
		return
	}
	for i, entry := range g.hallOfFame.Entries() {
		cx := float32(entry.X) + float32(entry.W)/2
		cy := float32(entry.Y) + float32(entry.H)/2
		if !g.camera.IsVisible(cx, cy, float32(entry.W)) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(cx, cy)
		col := toRaylib(renderer.FlippedColor(entry.FlipTime, g.cfg.Color.FlipHueRate))

		radius := float32(entry.W) / 2 * g.camera.Zoom
		if radius < 6 {
			radius = 6
		}
		rl.DrawCircleLines(int32(sx), int32(sy), radius, col)
		rl.DrawText(fmt.Sprintf("#%d", i+1), int32(sx)+int32(radius)+2, int32(sy)-6, 12, col)
	}
}
