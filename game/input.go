package game

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/renderer"
)

// handleInput processes one frame of keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && g.ticksPerFrame > 1 {
		g.ticksPerFrame--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.ticksPerFrame < 10 {
		g.ticksPerFrame++
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.showTrend = !g.showTrend
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.palettePanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveScreenshot()
	}

	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.HandleKeyPress(desc.Key)
		}
	}

	g.handleCameraInput()

	if g.showTrend {
		g.trendPanel.HandleInput()
	}

	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	canvasX := int(math.Floor(float64(wx)))
	canvasY := int(math.Floor(float64(wy)))
	g.inspector.HandleInput(mouse.X, mouse.Y, canvasX, canvasY, g.index)
}

// handleCameraInput applies pan, zoom, and reset controls.
func (g *Game) handleCameraInput() {
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleResize reacts to window size changes by repositioning every
// screen-anchored element.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.Resize(int32(w), int32(h))
	g.trendPanel.Resize(int32(w), int32(h))
}

// saveScreenshot writes the current canvas to a PNG named after the
// tick it captures.
func (g *Game) saveScreenshot() {
	dir := g.snapshotDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("flipfield_%06d.png", g.tick))
	if err := renderer.WritePNG(path, g.canvas); err != nil {
		slog.Error("failed to save screenshot", "path", path, "error", err)
		return
	}
	slog.Info("screenshot saved", "path", path, "tick", g.tick)
}
