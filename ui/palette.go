package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const paletteStripHeight = 10

// PalettePanelData feeds the color legend. The game samples the ramps;
// the panel only draws them.
type PalettePanelData struct {
	RunningRamp  []rl.Color // hue over theta2 across one full turn
	FlipRamp     []rl.Color // hue over flip time across one hue cycle
	HueCycleSec  float64    // simulated seconds per full flip-hue cycle
	TimeoutColor rl.Color
}

// PalettePanel explains the three region color mappings. Hidden until
// toggled.
type PalettePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewPalettePanel creates a palette legend panel at the given position.
func NewPalettePanel(x, y, width int32) *PalettePanel {
	return &PalettePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle flips panel visibility and returns the new state.
func (p *PalettePanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the legend when visible and returns the Y below it.
func (p *PalettePanel) Draw(data PalettePanelData) int32 {
	if !p.visible {
		return p.y
	}

	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	innerWidth := p.width - padding*2

	panelHeight := lineHeight*8 + padding*2
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := p.y + padding

	y = r.DrawSectionHeader(x, y, "Palette")
	y = r.DrawSpacer(y, 2)

	y = r.DrawLabelValue(x, y, "Running", "hue from arm angle", innerWidth)
	p.drawStrip(x, y, innerWidth, data.RunningRamp)
	y += paletteStripHeight + 4

	y = r.DrawLabelValue(x, y, "Flipped", "hue from flip time", innerWidth)
	p.drawStrip(x, y, innerWidth, data.FlipRamp)
	y += paletteStripHeight + 2

	r.DrawLabel(x, y, "0s")
	cycle := fmt.Sprintf("%.1fs", data.HueCycleSec)
	r.DrawLabel(x+innerWidth-rl.MeasureText(cycle, r.Theme.FontSize), y, cycle)
	y += lineHeight

	rl.DrawText("Timed out:", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth+10, y+2, 24, r.Theme.BarHeight, data.TimeoutColor)
	y += lineHeight

	return y + padding
}

// drawStrip paints a sampled color ramp one pixel column at a time so
// the strip fills its width exactly regardless of sample count.
func (p *PalettePanel) drawStrip(x, y, width int32, ramp []rl.Color) {
	if len(ramp) == 0 {
		return
	}
	for px := int32(0); px < width; px++ {
		idx := int(px) * len(ramp) / int(width)
		rl.DrawRectangle(x+px, y, 1, paletteStripHeight, ramp[idx])
	}
	rl.DrawRectangleLines(x, y, width, paletteStripHeight, p.renderer.Theme.PanelBorder)
}
