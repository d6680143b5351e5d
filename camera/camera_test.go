package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	// Should be centered on the canvas
	if cam.X != 1024 || cam.Y != 1024 {
		t.Errorf("expected camera at (1024, 1024), got (%f, %f)", cam.X, cam.Y)
	}
	// Should start fitted so the whole canvas is visible
	if cam.Zoom != 0.5 {
		t.Errorf("expected fitted zoom 0.5, got %f", cam.Zoom)
	}
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}
	if cam.MaxZoom != 16.0 {
		t.Errorf("expected MaxZoom 16.0, got %f", cam.MaxZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(1024, 1024)
	if math.Abs(float64(sx-512)) > 0.01 || math.Abs(float64(sy-512)) > 0.01 {
		t.Errorf("expected screen center (512, 512), got (%f, %f)", sx, sy)
	}

	// Half a canvas to the right at zoom 0.5 lands a quarter screen right
	sx, sy = cam.WorldToScreen(1536, 1024)
	if math.Abs(float64(sx-768)) > 0.01 || math.Abs(float64(sy-512)) > 0.01 {
		t.Errorf("expected (768, 512), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)
	cam.SetZoom(2.0)
	cam.Pan(300, -150)

	testCases := []struct{ sx, sy float32 }{
		{512, 512},  // center
		{100, 100},  // top-left
		{1000, 900}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClamps(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)
	cam.SetZoom(1.0)

	// At zoom 1 the view covers 1024 canvas pixels, so the center can
	// travel between 512 and 1536.
	cam.Pan(-100000, 0)
	if cam.X != 512 {
		t.Errorf("expected left clamp at 512, got %f", cam.X)
	}
	cam.Pan(100000, 0)
	if cam.X != 1536 {
		t.Errorf("expected right clamp at 1536, got %f", cam.X)
	}
	cam.Pan(0, 100000)
	if cam.Y != 1536 {
		t.Errorf("expected bottom clamp at 1536, got %f", cam.Y)
	}
}

func TestPanCentersWhenFitted(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	// At the fitted zoom the whole canvas is visible and panning has
	// nowhere to go.
	cam.Pan(500, 500)
	if cam.X != 1024 || cam.Y != 1024 {
		t.Errorf("fitted view should stay centered, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(100.0) // Above max
	if cam.Zoom != 16.0 {
		t.Errorf("expected zoom clamped to 16.0, got %f", cam.Zoom)
	}
}

func TestMinZoomPreventsDeadSpace(t *testing.T) {
	// Asymmetric viewport on a square canvas: the wide axis decides
	cam := New(1920, 1080, 1000, 1000)

	// MinZoom should be max(1920/1000, 1080/1000) = 1.92
	if math.Abs(float64(cam.MinZoom-1.92)) > 0.001 {
		t.Errorf("expected MinZoom 1.92, got %f", cam.MinZoom)
	}

	// At min zoom the visible area exactly fits the canvas in the
	// limiting dimension
	cam.SetZoom(cam.MinZoom)
	visibleW := cam.ViewportW / cam.Zoom
	if math.Abs(float64(visibleW-cam.WorldW)) > 0.01 {
		t.Errorf("at min zoom, visible width %f should equal canvas width %f", visibleW, cam.WorldW)
	}
}

func TestZoomSpringApproachesTarget(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	cam.ZoomBy(2.0)
	if cam.TargetZoom() != 1.0 {
		t.Fatalf("expected target 1.0, got %f", cam.TargetZoom())
	}
	// ZoomBy retargets without snapping the visible zoom
	if cam.Zoom != 0.5 {
		t.Fatalf("expected zoom still 0.5, got %f", cam.Zoom)
	}

	// Three seconds of frames is plenty for the spring to settle
	for i := 0; i < 180; i++ {
		cam.Update()
	}
	if math.Abs(float64(cam.Zoom-1.0)) > 0.001 {
		t.Errorf("zoom should settle near 1.0, got %f", cam.Zoom)
	}
}

func TestZoomByClampsTarget(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)

	cam.ZoomBy(1000)
	if cam.TargetZoom() != 16.0 {
		t.Errorf("expected target clamped to 16.0, got %f", cam.TargetZoom())
	}

	cam.ZoomBy(0.000001)
	if cam.TargetZoom() != 0.5 {
		t.Errorf("expected target clamped to 0.5, got %f", cam.TargetZoom())
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)
	cam.SetZoom(1.0)

	// Visible canvas range is [512, 1536] on both axes

	if !cam.IsVisible(1024, 1024, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(100, 1024, 10) {
		t.Error("far point should not be visible")
	}
	// Point just past the edge counts as visible within its radius
	if !cam.IsVisible(1540, 1024, 10) {
		t.Error("edge point with radius should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)
	cam.SetZoom(2.0)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != 768 || maxX != 1280 {
		t.Errorf("expected X bounds [768, 1280], got [%f, %f]", minX, maxX)
	}
	if minY != 768 || maxY != 1280 {
		t.Errorf("expected Y bounds [768, 1280], got [%f, %f]", minY, maxY)
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(512, 512, 1024, 1024)
	if cam.MinZoom != 0.5 {
		t.Fatalf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.Resize(2048, 2048)
	if cam.MinZoom != 2.0 {
		t.Errorf("expected MinZoom 2.0 after resize, got %f", cam.MinZoom)
	}
	if cam.Zoom < 2.0 {
		t.Errorf("zoom should be lifted to the new floor, got %f", cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1024, 1024, 2048, 2048)
	cam.SetZoom(4.0)
	cam.Pan(500, 300)

	cam.Reset()

	if cam.X != 1024 || cam.Y != 1024 {
		t.Errorf("expected position (1024, 1024), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected fitted zoom 0.5, got %f", cam.Zoom)
	}
}
