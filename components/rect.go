package components

// Rect is an axis-aligned region of the canvas in pixel coordinates.
// X,Y is the top-left corner; W,H are the extents.
type Rect struct {
	X, Y int
	W, H int
}

// CenterX returns the horizontal midpoint in canvas coordinates.
func (r Rect) CenterX() float64 {
	return float64(r.X) + float64(r.W)/2
}

// CenterY returns the vertical midpoint in canvas coordinates.
func (r Rect) CenterY() float64 {
	return float64(r.Y) + float64(r.H)/2
}

// Contains reports whether the pixel at (px, py) falls inside the rect.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Area returns the covered pixel count.
func (r Rect) Area() int {
	return r.W * r.H
}

// Splittable reports whether the rect can be divided into four exact
// halves without dropping below the minimum side length. Odd extents
// cannot split exactly and are terminal.
func (r Rect) Splittable(minSide int) bool {
	if r.W%2 != 0 || r.H%2 != 0 {
		return false
	}
	return r.W/2 >= minSide && r.H/2 >= minSide
}

// Quadrants returns the four halves in NW, NE, SW, SE order.
// The caller must check Splittable first; odd extents would leak pixels.
func (r Rect) Quadrants() [4]Rect {
	hw, hh := r.W/2, r.H/2
	return [4]Rect{
		{X: r.X, Y: r.Y, W: hw, H: hh},
		{X: r.X + hw, Y: r.Y, W: hw, H: hh},
		{X: r.X, Y: r.Y + hh, W: hw, H: hh},
		{X: r.X + hw, Y: r.Y + hh, W: hw, H: hh},
	}
}
