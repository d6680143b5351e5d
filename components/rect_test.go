package components

import "testing"

func TestQuadrantsTileExactly(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 16, H: 16},
		{X: 128, Y: 64, W: 512, H: 256},
		{X: 3, Y: 7, W: 10, H: 18},
	}

	for _, r := range rects {
		q := r.Quadrants()

		total := 0
		for _, c := range q {
			total += c.Area()
		}
		if total != r.Area() {
			t.Errorf("%+v quadrants cover %d pixels, want %d", r, total, r.Area())
		}

		// Every pixel of the parent must fall in exactly one quadrant.
		for py := r.Y; py < r.Y+r.H; py++ {
			for px := r.X; px < r.X+r.W; px++ {
				hits := 0
				for _, c := range q {
					if c.Contains(px, py) {
						hits++
					}
				}
				if hits != 1 {
					t.Fatalf("%+v pixel (%d,%d) covered by %d quadrants", r, px, py, hits)
				}
			}
		}
	}
}

func TestQuadrantOrder(t *testing.T) {
	q := Rect{X: 10, Y: 20, W: 8, H: 8}.Quadrants()

	want := [4]Rect{
		{X: 10, Y: 20, W: 4, H: 4},
		{X: 14, Y: 20, W: 4, H: 4},
		{X: 10, Y: 24, W: 4, H: 4},
		{X: 14, Y: 24, W: 4, H: 4},
	}
	if q != want {
		t.Errorf("quadrants = %+v, want NW,NE,SW,SE order %+v", q, want)
	}
}

func TestSplittable(t *testing.T) {
	cases := []struct {
		r       Rect
		minSide int
		want    bool
	}{
		{Rect{W: 16, H: 16}, 8, true},
		{Rect{W: 16, H: 16}, 9, false},
		{Rect{W: 8, H: 8}, 8, false},   // halves would be below minimum
		{Rect{W: 15, H: 16}, 1, false}, // odd width cannot split exactly
		{Rect{W: 16, H: 15}, 1, false},
		{Rect{W: 2, H: 2}, 1, true},
		{Rect{W: 2048, H: 2048}, 8, true},
	}
	for _, c := range cases {
		if got := c.r.Splittable(c.minSide); got != c.want {
			t.Errorf("Splittable(%+v, %d) = %v, want %v", c.r, c.minSide, got, c.want)
		}
	}
}

func TestContainsBoundary(t *testing.T) {
	r := Rect{X: 4, Y: 4, W: 4, H: 4}

	if !r.Contains(4, 4) {
		t.Error("top-left corner must be inside")
	}
	if !r.Contains(7, 7) {
		t.Error("last interior pixel must be inside")
	}
	if r.Contains(8, 7) || r.Contains(7, 8) {
		t.Error("right/bottom edges are exclusive")
	}
	if r.Contains(3, 4) || r.Contains(4, 3) {
		t.Error("pixels before the origin must be outside")
	}
}

func TestCenter(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 2048, H: 2048}
	if r.CenterX() != 1024 || r.CenterY() != 1024 {
		t.Errorf("root center = (%g,%g), want (1024,1024)", r.CenterX(), r.CenterY())
	}

	q := Rect{X: 8, Y: 8, W: 8, H: 8}
	if q.CenterX() != 12 || q.CenterY() != 12 {
		t.Errorf("center = (%g,%g), want (12,12)", q.CenterX(), q.CenterY())
	}
}

func TestStatusString(t *testing.T) {
	if StatusRunning.String() != "Running" || StatusFlipped.String() != "Flipped" || StatusTimedOut.String() != "Timed Out" {
		t.Error("status display names wrong")
	}
	if StatusRunning.Stopped() {
		t.Error("running must not report stopped")
	}
	if !StatusFlipped.Stopped() || !StatusTimedOut.Stopped() {
		t.Error("terminal statuses must report stopped")
	}
}
