// Package inspector provides region selection and the detail panel for
// the interactive renderer.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/camera"
	"github.com/pthm-cable/flipfield/components"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30

	diagramHeight = 150
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}

	ColorStatusRunning  = rl.Color{R: 240, G: 210, B: 100, A: 255}
	ColorStatusTimedOut = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// RegionLookup resolves the entity covering a canvas pixel. The game's
// pixel index satisfies this.
type RegionLookup interface {
	At(px, py int) (ecs.Entity, bool)
}

// NeighborFlip is one adjacent region's outcome, shown against the
// selected region's flip time in the neighbors section. Present is
// false at canvas edges.
type NeighborFlip struct {
	Dir      string
	Present  bool
	Status   components.Status
	FlipTime float64
}

// Inspector manages region selection and panel rendering.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX:       screenWidth - PanelWidth - 10,
		panelY:       10,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Resize repositions the panel after a window size change.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes click detection for region selection. The mouse
// position is given in screen coordinates for panel hit tests and in
// canvas coordinates for the region lookup.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, canvasX, canvasY int, lookup RegionLookup) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	// Left click to select
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	// Check if clicking the close button
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Check if clicking inside panel (ignore)
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	// Clicks outside the canvas keep the current selection
	entity, ok := lookup.At(canvasX, canvasY)
	if !ok {
		return
	}

	ins.selected = entity
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if a region is selected. The maps
// resolve the selected entity's components; maxSimTime scales the
// elapsed-time bar; neighbors feeds the flip-delta rows, with deltas
// compared against flipThreshold.
func (ins *Inspector) Draw(
	world *ecs.World,
	rectMap *ecs.Map1[components.Rect],
	penMap *ecs.Map1[components.Pendulum],
	regionMap *ecs.Map1[components.Region],
	minRegionPx int,
	maxSimTime float64,
	flipThreshold float64,
	neighbors []NeighborFlip,
) {
	if !ins.hasSelected {
		return
	}

	// The region may have split since selection, removing its entity
	if !world.Alive(ins.selected) {
		ins.Deselect()
		return
	}

	rect := rectMap.Get(ins.selected)
	pen := penMap.Get(ins.selected)
	region := regionMap.Get(ins.selected)
	if rect == nil || pen == nil || region == nil {
		ins.Deselect()
		return
	}

	panelHeight := ins.calculatePanelHeight(len(neighbors))

	// Draw panel background
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Draw header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("REGION", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	// Draw close button
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	// Content area
	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	// Status line colored by lifecycle
	statusColor := ColorStatusRunning
	switch region.Status {
	case components.StatusFlipped:
		statusColor = rl.Color{R: region.Color.R, G: region.Color.G, B: region.Color.B, A: 255}
	case components.StatusTimedOut:
		statusColor = ColorStatusTimedOut
	}
	rl.DrawText(region.Status.String(), x, y, 16, statusColor)
	y += 22

	// Separator
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	// Region section
	y += DrawLabel(x, y, "Bounds", fmt.Sprintf("%d,%d  %dx%d", rect.X, rect.Y, rect.W, rect.H))
	y += DrawLabel(x, y, "Depth", fmt.Sprintf("%d", region.Depth))
	y += DrawLabel(x, y, "Area", fmt.Sprintf("%d px", rect.Area()))
	y += DrawBool(x, y, "Splittable", rect.Splittable(minRegionPx))

	// Current color swatch
	rl.DrawText("Color", x, y, 14, ColorTextDim)
	rl.DrawRectangle(x+80, y, 14, 14, rl.Color{R: region.Color.R, G: region.Color.G, B: region.Color.B, A: 255})
	y += 18

	// Separator
	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	// Pendulum state section
	ins.drawSectionHeader(x, y, "PENDULUM")
	y += 20

	for _, fd := range components.PendulumFieldDescriptors() {
		if fd.ID == "elapsed" {
			y += DrawBar(x, y, fd.Label, float32(pen.Elapsed), float32(maxSimTime))
			continue
		}
		y += DrawField(x, y, fd, components.GetPendulumValue(pen, fd.ID))
	}

	// Separator
	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	// Outcome section
	ins.drawSectionHeader(x, y, "OUTCOME")
	y += 20

	switch region.Status {
	case components.StatusFlipped:
		y += DrawLabel(x, y, "Flip time", fmt.Sprintf("%.2fs", region.FlipTime))
	case components.StatusTimedOut:
		y += DrawLabel(x, y, "Flip time", fmt.Sprintf("none within %.0fs", maxSimTime))
	default:
		y += DrawLabel(x, y, "Flip time", "still running")
	}

	// Neighbor comparison section
	if len(neighbors) > 0 {
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8

		ins.drawSectionHeader(x, y, "NEIGHBORS")
		y += 20
		for _, n := range neighbors {
			y += ins.drawNeighborRow(x, y, n, region, flipThreshold)
		}
	}

	// Separator
	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	// Pendulum diagram
	ins.drawSectionHeader(x, y, "ARMS")
	y += 20
	DrawPendulumDiagram(x, y, PanelWidth-2*PanelPadding, diagramHeight, pen.State, pen.Params)
}

// drawNeighborRow prints one neighbor's outcome and, when both regions
// have flipped, the flip-time difference the subdivision rule compares
// against the threshold. Differences under the threshold highlight.
func (ins *Inspector) drawNeighborRow(x, y int32, n NeighborFlip, region *components.Region, threshold float64) int32 {
	rl.DrawText(n.Dir, x, y, 14, ColorTextDim)

	text := "canvas edge"
	col := ColorTextDim
	switch {
	case !n.Present:
	case n.Status == components.StatusRunning:
		text, col = "running", ColorStatusRunning
	case n.Status == components.StatusTimedOut:
		text, col = "timed out", ColorStatusTimedOut
	default:
		text, col = fmt.Sprintf("%.2fs", n.FlipTime), ColorText
		if region.Status == components.StatusFlipped {
			delta := math.Abs(region.FlipTime - n.FlipTime)
			text = fmt.Sprintf("%.2fs  diff %.2f", n.FlipTime, delta)
			if delta < threshold {
				col = ColorAngleNeedle
			}
		}
	}
	rl.DrawText(text, x+80, y, 14, col)
	return 18
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(neighborRows int) int32 {
	height := HeaderHeight + PanelPadding // header
	height += 22                          // status line
	height += 12                          // separator
	height += 20 * 3                      // bounds, depth, area
	height += 18 * 2                      // splittable, color swatch
	height += 12                          // separator
	height += 20                          // pendulum header
	height += 44 * 2                      // angle dials
	height += 18 * 3                      // omega bars, dead center
	height += 20                          // energy label
	height += 18                          // elapsed bar
	height += 12                          // separator
	height += 20 + 20                     // outcome header and line
	if neighborRows > 0 {
		height += 12 + 20 + 18*neighborRows // separator, header, rows
	}
	height += 12                 // separator
	height += 20 + diagramHeight // diagram header and canvas
	height += PanelPadding

	return int32(height)
}

// DrawSelectionHighlight outlines the selected region in world space and
// draws its live arms when zoomed in.
func (ins *Inspector) DrawSelectionHighlight(
	world *ecs.World,
	rectMap *ecs.Map1[components.Rect],
	penMap *ecs.Map1[components.Pendulum],
	regionMap *ecs.Map1[components.Region],
	cam *camera.Camera,
) {
	if !ins.hasSelected {
		return
	}
	if !world.Alive(ins.selected) {
		ins.Deselect()
		return
	}

	rect := rectMap.Get(ins.selected)
	pen := penMap.Get(ins.selected)
	region := regionMap.Get(ins.selected)
	if rect == nil || pen == nil || region == nil {
		return
	}

	sx, sy := cam.WorldToScreen(float32(rect.X), float32(rect.Y))
	sw := float32(rect.W) * cam.Zoom
	sh := float32(rect.H) * cam.Zoom

	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: sx, Y: sy, Width: sw, Height: sh},
		2,
		rl.Yellow,
	)

	// Arms drawn at the region midpoint, scaled to fit inside it
	if sw > 24 && sh > 24 {
		cx, cy := cam.WorldToScreen(float32(rect.CenterX()), float32(rect.CenterY()))
		size := sw
		if sh < size {
			size = sh
		}
		DrawPendulumArms(cx, cy, size*0.45, pen.State, pen.Params, armAlpha(region.Status))
	}
}

// armAlpha dims the arms of stopped regions.
func armAlpha(s components.Status) uint8 {
	if s.Stopped() {
		return 140
	}
	return 255
}
