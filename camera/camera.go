// Package camera provides a 2D camera system for viewport control.
package camera

import "github.com/charmbracelet/harmonica"

// Spring tuning for smoothed zoom. Frequency sets how fast the zoom
// chases its target, damping below 1 allows a slight overshoot.
const (
	zoomSpringFPS       = 60
	zoomSpringFrequency = 7.0
	zoomSpringDamping   = 0.85
)

// Camera controls the viewport into the canvas. Panning is clamped to
// the canvas bounds and zoom changes are spring-smoothed toward a
// target level, advanced one frame per Update call.
type Camera struct {
	// Position is the camera center in canvas coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1 pixels, smoothed toward the target)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (canvas size)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	target  float64
	zoomVel float64
	spring  harmonica.Spring
}

// New creates a camera fitted to show the whole canvas.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	// The zoom floor keeps the visible area inside the canvas:
	// at zoom Z the viewport covers (viewportW/Z, viewportH/Z).
	minZoom := fitZoom(viewportW, viewportH, worldW, worldH)

	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      minZoom,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   minZoom,
		MaxZoom:   16.0,
		target:    float64(minZoom),
		spring:    harmonica.NewSpring(harmonica.FPS(zoomSpringFPS), zoomSpringFrequency, zoomSpringDamping),
	}
	return c
}

func fitZoom(viewportW, viewportH, worldW, worldH float32) float32 {
	zx := viewportW / worldW
	zy := viewportH / worldH
	if zy > zx {
		return zy
	}
	return zx
}

// Update advances the zoom spring one frame and keeps the view inside
// the canvas. Call once per rendered frame.
func (c *Camera) Update() {
	pos, vel := c.spring.Update(float64(c.Zoom), c.zoomVel, c.target)
	c.Zoom = clamp(float32(pos), c.MinZoom, c.MaxZoom)
	c.zoomVel = vel
	c.clampCenter()
}

// WorldToScreen converts canvas coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to canvas coordinates.
// The result can land outside the canvas when the viewport shows
// letterbox margins; callers check bounds.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// VisibleWorldBounds returns the canvas-coordinate bounds of the
// visible area as (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = fitZoom(viewportW, viewportH, c.WorldW, c.WorldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.target < float64(c.MinZoom) {
		c.target = float64(c.MinZoom)
	}
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels, clamped to
// the canvas bounds.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom snaps the zoom level immediately, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	z := clamp(zoom, c.MinZoom, c.MaxZoom)
	c.Zoom = z
	c.target = float64(z)
	c.zoomVel = 0
	c.clampCenter()
}

// ZoomBy multiplies the target zoom by the given factor; the visible
// zoom follows through the spring.
func (c *Camera) ZoomBy(factor float32) {
	c.target = float64(clamp(float32(c.target)*factor, c.MinZoom, c.MaxZoom))
}

// TargetZoom returns the level the zoom spring is settling toward.
func (c *Camera) TargetZoom() float32 {
	return float32(c.target)
}

// Reset returns the camera to the fitted whole-canvas view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(c.MinZoom)
}

// clampCenter keeps the visible area inside the canvas. When the view
// is wider than the canvas on an axis, the camera centers that axis.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	if halfW*2 >= c.WorldW {
		c.X = c.WorldW / 2
	} else {
		c.X = clamp(c.X, halfW, c.WorldW-halfW)
	}
	if halfH*2 >= c.WorldH {
		c.Y = c.WorldH / 2
	} else {
		c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
