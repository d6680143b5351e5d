package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/telemetry"
)

const (
	// History buffer size (number of telemetry windows to keep)
	trendHistorySize = 120

	// Line series indices
	seriesActive   = 0
	seriesQueued   = 1
	seriesStopped  = 2
	seriesFlips    = 3
	seriesTimeouts = 4
	seriesSplits   = 5
	numSeries      = 6
)

// TrendPanel displays run-wide telemetry with line graphs. The census
// series track region counts on the left axis; the event series track
// per-window counts on the right axis.
type TrendPanel struct {
	screenWidth  int32
	screenHeight int32

	// Panel dimensions
	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	// Most recent window
	stats    telemetry.WindowStats
	hasStats bool

	// Percentile bars are normalized against the simulation time cap
	maxFlipTime float64

	// Historical data for line graphs (ring buffers)
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	// Series visibility (toggled by clicking legend)
	seriesVisible [numSeries]bool

	// Series metadata
	seriesNames  [numSeries]string
	seriesColors [numSeries]rl.Color
}

// Trend panel colors
var (
	colorTrendTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorTrendPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg      = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid    = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder  = rl.Color{R: 60, G: 60, B: 70, A: 255}

	// Series colors
	colorSeriesActive   = rl.Color{R: 100, G: 149, B: 237, A: 255} // Cornflower blue
	colorSeriesQueued   = rl.Color{R: 160, G: 120, B: 60, A: 255}  // Brown/tan
	colorSeriesStopped  = rl.Color{R: 150, G: 150, B: 160, A: 255} // Gray
	colorSeriesFlips    = rl.Color{R: 80, G: 180, B: 80, A: 255}   // Green
	colorSeriesTimeouts = rl.Color{R: 255, G: 100, B: 80, A: 255}  // Red-orange
	colorSeriesSplits   = rl.Color{R: 255, G: 255, B: 100, A: 255} // Yellow
)

// NewTrendPanel creates a new telemetry trend panel.
func NewTrendPanel(screenWidth, screenHeight int32, maxFlipTime float64) *TrendPanel {
	// Panel spans bottom of screen, leaving room on the right for the
	// region inspector
	panelWidth := screenWidth - 420
	if panelWidth < 400 {
		panelWidth = 400
	}
	panelHeight := int32(200)

	p := &TrendPanel{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   panelWidth,
		panelHeight:  panelHeight,
		panelX:       10,
		panelY:       screenHeight - panelHeight - 10,
		maxFlipTime:  maxFlipTime,
	}

	// Initialize history buffers
	for i := 0; i < numSeries; i++ {
		p.history[i] = make([]float64, trendHistorySize)
	}

	// Default visibility: census plus the events that drive the fractal
	p.seriesVisible = [numSeries]bool{
		true,  // Active
		true,  // Queued
		false, // Stopped
		true,  // Flips
		false, // Timeouts
		true,  // Splits
	}

	// Series names for legend
	p.seriesNames = [numSeries]string{
		"Active",
		"Queued",
		"Stopped",
		"Flips/w",
		"Touts/w",
		"Splits/w",
	}

	// Series colors
	p.seriesColors = [numSeries]rl.Color{
		colorSeriesActive,
		colorSeriesQueued,
		colorSeriesStopped,
		colorSeriesFlips,
		colorSeriesTimeouts,
		colorSeriesSplits,
	}

	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *TrendPanel) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight

	p.panelWidth = screenWidth - 420
	if p.panelWidth < 400 {
		p.panelWidth = 400
	}
	p.panelY = screenHeight - p.panelHeight - 10
}

// Update receives a flushed telemetry window.
func (p *TrendPanel) Update(stats telemetry.WindowStats) {
	p.stats = stats
	p.hasStats = true

	idx := p.historyIndex
	p.history[seriesActive][idx] = float64(stats.Active)
	p.history[seriesQueued][idx] = float64(stats.Queued)
	p.history[seriesStopped][idx] = float64(stats.Flipped + stats.TimedOut)
	p.history[seriesFlips][idx] = float64(stats.Flips)
	p.history[seriesTimeouts][idx] = float64(stats.Timeouts)
	p.history[seriesSplits][idx] = float64(stats.Splits)

	// Advance ring buffer
	p.historyIndex = (p.historyIndex + 1) % trendHistorySize
	if p.historyCount < trendHistorySize {
		p.historyCount++
	}
}

// HandleInput processes mouse clicks for legend toggling.
func (p *TrendPanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()

	// Check if click is in legend area
	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*90
		itemW := int32(85)
		itemH := int32(18)

		if mx >= itemX && mx < itemX+itemW && my >= legendY && my < legendY+itemH {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

// Draw renders the trend panel with graphs.
func (p *TrendPanel) Draw() {
	// Panel background
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorTrendPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	// Title
	rl.DrawText("TELEMETRY", p.panelX+10, p.panelY+6, 14, colorTrendTitle)

	// Show waiting message if no window has flushed yet
	if p.historyCount == 0 {
		rl.DrawText("Waiting for first window...", p.panelX+100, p.panelY+80, 14, ColorTextDim)
		return
	}

	// Layout dimensions
	barsWidth := int32(160)
	graphX := p.panelX + barsWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - barsWidth - 40
	graphH := p.panelHeight - 54 // Leave room for legend

	// Draw census bars on the left
	p.drawCensusBars(p.panelX+10, p.panelY+28, barsWidth-20)

	// Flip time percentiles under the census bars
	p.drawFlipTimeBars(p.panelX+10, p.panelY+110)

	// Draw line graph
	p.drawGraph(graphX, graphY, graphW, graphH)

	// Draw legend at bottom
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawCensusBars draws region counts as proportions of the total.
func (p *TrendPanel) drawCensusBars(x, y, width int32) {
	total := float64(p.stats.Total)
	if total <= 0 {
		total = 1
	}

	barHeight := int32(14)
	spacing := int32(18)

	p.drawSingleBar(x, y, width, barHeight, "Act", float64(p.stats.Active), total, colorSeriesActive)
	y += spacing

	p.drawSingleBar(x, y, width, barHeight, "Que", float64(p.stats.Queued), total, colorSeriesQueued)
	y += spacing

	p.drawSingleBar(x, y, width, barHeight, "Flip", float64(p.stats.Flipped), total, colorSeriesFlips)
	y += spacing

	p.drawSingleBar(x, y, width, barHeight, "Tout", float64(p.stats.TimedOut), total, colorSeriesTimeouts)
}

// drawFlipTimeBars draws the window's flip time percentiles.
func (p *TrendPanel) drawFlipTimeBars(x, y int32) {
	if p.stats.Flips == 0 {
		rl.DrawText("no flips in window", x, y+8, 11, ColorTextDim)
		return
	}

	values := []float32{
		float32(p.stats.FlipTimeP10),
		float32(p.stats.FlipTimeP50),
		float32(p.stats.FlipTimeP90),
		float32(p.stats.FlipTimeMean),
	}
	labels := []string{"p10", "p50", "p90", "avg"}
	DrawBarGroup(x, y, "Flip t", values, labels, float32(p.maxFlipTime))
}

// drawSingleBar draws one horizontal bar.
func (p *TrendPanel) drawSingleBar(x, y, width, height int32, label string, value, total float64, color rl.Color) {
	labelW := int32(35)
	barW := width - labelW - 45

	// Label
	rl.DrawText(label, x, y, 11, ColorText)

	// Bar background
	barX := x + labelW
	rl.DrawRectangle(barX, y, barW, height, ColorBarBg)

	// Bar fill
	ratio := float32(value / total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	fillW := int32(float32(barW) * ratio)
	rl.DrawRectangle(barX, y, fillW, height, color)

	// Value
	rl.DrawText(formatCount(value), barX+barW+4, y, 10, ColorTextDim)
}

// drawGraph renders the line graph.
func (p *TrendPanel) drawGraph(x, y, w, h int32) {
	// Graph background
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	// Draw grid lines
	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	// Separate scaling for census counts vs per-window events
	censusMin, censusMax := p.getSeriesRange([]int{seriesActive, seriesQueued, seriesStopped})
	eventMin, eventMax := p.getSeriesRange([]int{seriesFlips, seriesTimeouts, seriesSplits})

	// Draw census lines (left Y axis)
	for _, series := range []int{seriesActive, seriesQueued, seriesStopped} {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, censusMin, censusMax)
		}
	}

	// Draw event lines (right Y axis with its own scale)
	for _, series := range []int{seriesFlips, seriesTimeouts, seriesSplits} {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, eventMin, eventMax)
		}
	}

	// Draw Y-axis labels
	p.drawAxisLabels(x, y, w, h, censusMin, censusMax, eventMin, eventMax)
}

// getSeriesRange finds min/max across specified visible series.
func (p *TrendPanel) getSeriesRange(seriesIndices []int) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	hasVisible := false

	for _, s := range seriesIndices {
		if !p.seriesVisible[s] {
			continue
		}
		hasVisible = true

		for i := 0; i < p.historyCount; i++ {
			idx := (p.historyIndex - p.historyCount + i + trendHistorySize) % trendHistorySize
			v := p.history[s][idx]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if !hasVisible || min >= max {
		return 0, 1
	}

	// Add 10% padding
	padding := (max - min) * 0.1
	if padding < 0.001 {
		padding = 0.001
	}
	return min - padding, max + padding
}

// drawSeriesLine draws one data series as a line.
func (p *TrendPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	if p.historyCount < 2 {
		return
	}

	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		idx := (p.historyIndex - p.historyCount + i + trendHistorySize) % trendHistorySize
		v := p.history[series][idx]

		// Map to screen coordinates
		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))

		// Clamp to graph bounds
		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawAxisLabels draws Y-axis scale labels.
func (p *TrendPanel) drawAxisLabels(x, y, w, h int32, censusMin, censusMax, eventMin, eventMax float64) {
	// Left axis (census counts)
	rl.DrawText(formatCount(censusMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(formatCount(censusMin), x+2, y+h-10, 9, ColorTextDim)

	// Right axis (events) - only if any event series visible
	hasEventVisible := false
	for _, s := range []int{seriesFlips, seriesTimeouts, seriesSplits} {
		if p.seriesVisible[s] {
			hasEventVisible = true
			break
		}
	}
	if hasEventVisible {
		eventMaxLabel := fmt.Sprintf("%.0f", eventMax)
		eventMinLabel := fmt.Sprintf("%.0f", eventMin)
		textW := rl.MeasureText(eventMaxLabel, 9)
		rl.DrawText(eventMaxLabel, x+w-textW-2, y+2, 9, ColorTextDim)
		textW = rl.MeasureText(eventMinLabel, 9)
		rl.DrawText(eventMinLabel, x+w-textW-2, y+h-10, 9, ColorTextDim)
	}
}

// drawLegend draws the interactive legend.
func (p *TrendPanel) drawLegend(x, y int32) {
	itemWidth := int32(88)

	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]

		// Dim if not visible
		if !p.seriesVisible[i] {
			color.A = 80
		}

		// Color box
		rl.DrawRectangle(itemX, y+2, 10, 10, color)

		// Label
		textColor := ColorText
		if !p.seriesVisible[i] {
			textColor = ColorTextDim
		}
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	// Hint
	hintX := x + int32(numSeries)*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

// formatCount formats a count for axis and bar labels.
func formatCount(v float64) string {
	if v >= 10000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	if v >= 1000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}
