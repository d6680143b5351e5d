package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists every overlay with its key binding and current
// state. Hidden until toggled, so the canvas starts unobstructed.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a controls panel at the given position.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle flips panel visibility and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the overlay list when visible and returns the Y below
// the panel so callers can stack more panels under it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// One row per overlay plus a header row per category.
	cats := overlays.Categories()
	rows := int32(0)
	for _, cat := range cats {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	height := rows*lineHeight + padding*3 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += lineHeight + 4

	for _, cat := range cats {
		y = r.DrawSectionHeader(x, y, categoryTitle(cat))
		for _, desc := range overlays.ByCategory(cat) {
			c.drawOverlayRow(x, y, desc, overlays.IsEnabled(desc.ID))
			y += lineHeight
		}
		y = r.DrawSpacer(y, 4)
	}

	return y
}

// drawOverlayRow draws one toggle line: state box, name, key binding.
func (c *ControlsPanel) drawOverlayRow(x, y int32, desc OverlayDescriptor, enabled bool) {
	r := c.renderer

	box := rl.Color{R: 80, G: 80, B: 80, A: 255}
	name := r.Theme.LabelColor
	if enabled {
		box = rl.Color{R: 100, G: 200, B: 100, A: 255}
		name = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, box)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, name)

	if desc.KeyLabel == "" {
		return
	}
	key := "[" + desc.KeyLabel + "]"
	keyX := c.x + c.width - r.Theme.Padding - rl.MeasureText(key, r.Theme.FontSize)
	rl.DrawText(key, keyX, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
}

var categoryTitles = map[string]string{
	"visual": "Visual",
	"debug":  "Debug",
}

func categoryTitle(cat string) string {
	if title, ok := categoryTitles[cat]; ok {
		return title
	}
	return cat
}

// QuickStatsData holds data for the quick stats section.
type QuickStatsData struct {
	FlipRate       float64
	MedianFlipTime float64
	StoppedAreaPct float64
	SplitsInWindow int
}

// QuickStatsPanel renders the last telemetry window at a glance.
type QuickStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewQuickStatsPanel creates a new quick stats panel.
func NewQuickStatsPanel(x, y, width int32) *QuickStatsPanel {
	return &QuickStatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the quick stats panel.
func (q *QuickStatsPanel) Draw(data QuickStatsData) int32 {
	r := q.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*6 + padding*2

	// Draw panel background
	r.DrawPanel(q.x, q.y, q.width, panelHeight)

	y := q.y + padding

	y = r.DrawSectionHeader(q.x+padding, y, "Last Window")
	y = r.DrawSpacer(y, 2)

	y = r.DrawLabelValue(q.x+padding, y, "Flip rate", fmt.Sprintf("%.0f%%", data.FlipRate*100), q.width-padding*2)
	y = r.DrawLabelValue(q.x+padding, y, "Flip p50", fmt.Sprintf("%.1fs", data.MedianFlipTime), q.width-padding*2)
	y = r.DrawLabelValue(q.x+padding, y, "Splits", fmt.Sprintf("%d", data.SplitsInWindow), q.width-padding*2)

	// Stopped canvas area doubles as run progress
	y = r.DrawBar(q.x+padding, y, "Stopped", float32(data.StoppedAreaPct), q.width-padding*2)

	return y
}
