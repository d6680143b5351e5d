// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
)

// Directions index the four cardinal neighbors of a region.
const (
	DirUp = iota
	DirDown
	DirLeft
	DirRight
)

// RegionIndex maps every canvas pixel to the region entity covering it.
// Pixel-exact stamping keeps lookups correct for any tiling the splitter
// produces, including odd-sized terminal leaves.
type RegionIndex struct {
	width  int
	height int
	cells  []ecs.Entity
}

// NewRegionIndex creates an index covering a width x height canvas.
func NewRegionIndex(width, height int) *RegionIndex {
	return &RegionIndex{
		width:  width,
		height: height,
		cells:  make([]ecs.Entity, width*height),
	}
}

// Cover stamps the region entity onto every pixel of the rect.
// Children stamped after a split overwrite the parent's claim.
func (ix *RegionIndex) Cover(r components.Rect, e ecs.Entity) {
	for y := r.Y; y < r.Y+r.H; y++ {
		base := y * ix.width
		for x := r.X; x < r.X+r.W; x++ {
			ix.cells[base+x] = e
		}
	}
}

// At returns the region entity covering the pixel, if inside the canvas.
func (ix *RegionIndex) At(px, py int) (ecs.Entity, bool) {
	if px < 0 || px >= ix.width || py < 0 || py >= ix.height {
		return ecs.Entity{}, false
	}
	return ix.cells[py*ix.width+px], true
}

// Neighbors probes one pixel outward from the midpoint of each side and
// returns the covering entity per direction. Present is false at canvas
// edges. A region has exactly one handle per direction no matter how
// finely the far side is divided.
func (ix *RegionIndex) Neighbors(r components.Rect) (ents [4]ecs.Entity, present [4]bool) {
	cx := r.X + r.W/2
	cy := r.Y + r.H/2

	ents[DirUp], present[DirUp] = ix.At(cx, r.Y-1)
	ents[DirDown], present[DirDown] = ix.At(cx, r.Y+r.H)
	ents[DirLeft], present[DirLeft] = ix.At(r.X-1, cy)
	ents[DirRight], present[DirRight] = ix.At(r.X+r.W, cy)
	return ents, present
}
