package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Active       int
	Queued       int
	Flipped      int
	TimedOut     int
	Splits       int
	TotalRegions int
	MaxDepth     int
	Tick         int32
	SimTime      float64
	Speed        int
	FPS          int32
	Paused       bool
	Finished     bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Region census
	rl.DrawText(
		fmt.Sprintf("Regions: %d | Active: %d | Queued: %d | Flipped: %d | Timed out: %d | Splits: %d | Depth: %d",
			data.TotalRegions, data.Active, data.Queued, data.Flipped, data.TimedOut, data.Splits, data.MaxDepth),
		10, 35, 16, rl.LightGray,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Sim: %.0fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	statusColor := rl.Yellow
	if data.Paused {
		statusText = "PAUSED"
	} else if data.Finished {
		statusText = "SETTLED"
		statusColor = rl.Green
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	Total    time.Duration
	Order    []string
}

// PerfPanel renders the tick phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range data.Order {
		avg, ok := data.PhaseAvg[name]
		if !ok {
			continue
		}
		pct := data.PhasePct[name]

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// HallPanelData holds data for the hall of fame panel.
type HallPanelData struct {
	Entries      []HallEntryInfo
	TotalStopped int
	ShowMarkers  bool
}

// HallEntryInfo holds display info for a single hall of fame entry.
type HallEntryInfo struct {
	Rank     int
	FlipTime float64
	Depth    int
	X, Y     int
	Color    rl.Color
}

// HallPanel renders the longest-flip leaderboard.
type HallPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewHallPanel creates a new hall of fame panel.
func NewHallPanel(x, y, width, height int32) *HallPanel {
	return &HallPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the panel position.
func (n *HallPanel) SetPosition(x, y int32) {
	n.x = x
	n.y = y
}

// Draw renders the hall of fame panel.
func (n *HallPanel) Draw(data HallPanelData) {
	r := n.renderer
	padding := r.Theme.Padding
	lineHeight := int32(16)

	// Draw panel background
	r.DrawPanel(n.x, n.y, n.width, n.height)

	y := n.y + padding

	// Header
	rl.DrawText("Hall of Fame", n.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// Marker mode indicator
	modeText := "Markers: OFF"
	modeColor := rl.Gray
	if data.ShowMarkers {
		modeText = "Markers: ON"
		modeColor = rl.Green
	}
	rl.DrawText(modeText, n.x+padding, y, 12, modeColor)
	y += lineHeight

	y = r.DrawLabelValue(n.x+padding, y, "Stopped", fmt.Sprintf("%d", data.TotalStopped), n.width-padding*2)
	y = r.DrawSpacer(y, 4)

	if len(data.Entries) == 0 {
		r.DrawLabel(n.x+padding, y, "(no flips yet)")
		return
	}

	y = r.DrawSectionHeader(n.x+padding, y, "Longest flips:")
	y = r.DrawSpacer(y, 2)

	for i, entry := range data.Entries {
		if i >= 5 {
			break
		}

		// Color swatch shows the painted flip color
		swatchSize := int32(10)
		rl.DrawRectangle(n.x+padding, y+2, swatchSize, swatchSize, entry.Color)

		text := fmt.Sprintf("#%d: %.1fs (depth %d at %d,%d)",
			entry.Rank, entry.FlipTime, entry.Depth, entry.X, entry.Y)
		rl.DrawText(text, n.x+padding+swatchSize+6, y, 12, rl.LightGray)
		y += lineHeight
	}
}
