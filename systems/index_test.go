package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
)

func addRegion(m *ecs.Map2[components.Rect, components.Region], ix *RegionIndex, r components.Rect, st components.Status, flipTime float64) ecs.Entity {
	rect := r
	reg := components.Region{Status: st, FlipTime: flipTime}
	e := m.NewEntity(&rect, &reg)
	ix.Cover(r, e)
	return e
}

func TestRegionIndexCoversEveryPixel(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Rect, components.Region](world)
	ix := NewRegionIndex(16, 16)

	rects := []components.Rect{
		{X: 0, Y: 0, W: 8, H: 8},
		{X: 8, Y: 0, W: 8, H: 8},
		{X: 0, Y: 8, W: 8, H: 8},
		{X: 8, Y: 8, W: 8, H: 8},
	}
	ents := make([]ecs.Entity, len(rects))
	for i, r := range rects {
		ents[i] = addRegion(mapper, ix, r, components.StatusRunning, 0)
	}

	for py := 0; py < 16; py++ {
		for px := 0; px < 16; px++ {
			e, ok := ix.At(px, py)
			if !ok {
				t.Fatalf("pixel (%d,%d) reported outside canvas", px, py)
			}
			want := ents[(py/8)*2+px/8]
			if e != want {
				t.Fatalf("pixel (%d,%d) maps to wrong region", px, py)
			}
		}
	}

	if _, ok := ix.At(-1, 0); ok {
		t.Error("negative coordinate must be outside")
	}
	if _, ok := ix.At(16, 0); ok {
		t.Error("coordinate past the edge must be outside")
	}
}

func TestRegionIndexNeighbors(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Rect, components.Region](world)
	ix := NewRegionIndex(16, 16)

	nw := addRegion(mapper, ix, components.Rect{X: 0, Y: 0, W: 8, H: 8}, components.StatusRunning, 0)
	ne := addRegion(mapper, ix, components.Rect{X: 8, Y: 0, W: 8, H: 8}, components.StatusRunning, 0)
	sw := addRegion(mapper, ix, components.Rect{X: 0, Y: 8, W: 8, H: 8}, components.StatusRunning, 0)
	addRegion(mapper, ix, components.Rect{X: 8, Y: 8, W: 8, H: 8}, components.StatusRunning, 0)

	ents, present := ix.Neighbors(components.Rect{X: 0, Y: 0, W: 8, H: 8})

	if present[DirUp] || present[DirLeft] {
		t.Error("canvas corner region must have no up/left neighbors")
	}
	if !present[DirRight] || ents[DirRight] != ne {
		t.Error("right neighbor wrong")
	}
	if !present[DirDown] || ents[DirDown] != sw {
		t.Error("down neighbor wrong")
	}
	_ = nw
}

func TestRegionIndexSingleHandleAcrossSizes(t *testing.T) {
	// A tall region bordered by two finer regions resolves to the one
	// covering its side midpoint.
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Rect, components.Region](world)
	ix := NewRegionIndex(16, 16)

	tall := components.Rect{X: 0, Y: 0, W: 8, H: 16}
	addRegion(mapper, ix, tall, components.StatusRunning, 0)
	addRegion(mapper, ix, components.Rect{X: 8, Y: 0, W: 8, H: 8}, components.StatusRunning, 0)
	lower := addRegion(mapper, ix, components.Rect{X: 8, Y: 8, W: 8, H: 8}, components.StatusRunning, 0)

	ents, present := ix.Neighbors(tall)
	if !present[DirRight] {
		t.Fatal("right neighbor missing")
	}
	if ents[DirRight] != lower {
		t.Error("right handle must be the region covering the side midpoint")
	}
}

func TestRegionIndexCoverOverwrites(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Rect, components.Region](world)
	ix := NewRegionIndex(16, 16)

	parent := components.Rect{X: 0, Y: 0, W: 16, H: 16}
	old := addRegion(mapper, ix, parent, components.StatusFlipped, 1)

	children := parent.Quadrants()
	kids := make([]ecs.Entity, 4)
	for i, q := range children {
		kids[i] = addRegion(mapper, ix, q, components.StatusRunning, 0)
	}

	for py := 0; py < 16; py++ {
		for px := 0; px < 16; px++ {
			e, _ := ix.At(px, py)
			if e == old {
				t.Fatalf("pixel (%d,%d) still maps to the replaced parent", px, py)
			}
		}
	}
	for i, q := range children {
		if e, _ := ix.At(q.X, q.Y); e != kids[i] {
			t.Errorf("quadrant %d corner maps to wrong region", i)
		}
	}
}
