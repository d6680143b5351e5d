package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/components"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarHot      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorBarPositive = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBarNegative = rl.Color{R: 200, G: 100, B: 100, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders a name/value text line.
func DrawLabel(x, y int32, name, value string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, value), x, y, 16, ColorText)
	return 20
}

// DrawBar renders a horizontal progress bar. The fill reddens as the
// value approaches its cap.
func DrawBar(x, y int32, name string, value, maxVal float32) int32 {
	ratio := float32(0)
	if maxVal > 0 {
		ratio = value / maxVal
	}
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Bar background
	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	// Bar fill
	fillWidth := int32(float32(barWidth) * ratio)
	fillColor := ColorBarFill
	if ratio > 0.85 {
		fillColor = ColorBarHot
	}
	rl.DrawRectangle(barX, y, fillWidth, barHeight, fillColor)

	// Value text
	valueStr := fmt.Sprintf("%.1f", value)
	rl.DrawText(valueStr, barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawCenteredBar renders a bar centered at zero for signed values.
func DrawCenteredBar(x, y int32, name string, value, minVal, maxVal float32) int32 {
	barWidth := int32(120)
	barHeight := int32(14)

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Bar background
	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	// Center line
	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y, centerX, y+barHeight, ColorTextDim)

	// Fill from center
	span := maxVal
	if -minVal > span {
		span = -minVal
	}
	ratio := float32(0)
	if span > 0 {
		ratio = float32(math.Abs(float64(value))) / span
	}
	if ratio > 1 {
		ratio = 1
	}
	fillWidth := int32(float32(barWidth/2) * ratio)

	fillX := centerX
	fillColor := ColorBarPositive
	if value < 0 {
		fillX = centerX - fillWidth
		fillColor = ColorBarNegative
	}
	rl.DrawRectangle(fillX, y, fillWidth, barHeight, fillColor)

	// Value text
	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawBarGroup renders multiple mini-bars for grouped data with labels
// under each bar.
func DrawBarGroup(x, y int32, name string, values []float32, labels []string, maxVal float32) int32 {
	barWidth := int32(20)
	barHeight := int32(30)
	gap := int32(2)
	labelHeight := int32(0)
	if len(labels) == len(values) {
		labelHeight = 10
	}

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Bars
	barX := x + 60
	for i, v := range values {
		ratio := float32(0)
		if maxVal > 0 {
			ratio = v / maxVal
		}
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}

		// Background
		rl.DrawRectangle(barX+int32(i)*(barWidth+gap), y, barWidth, barHeight, ColorBarBg)

		// Fill from bottom
		fillHeight := int32(float32(barHeight) * ratio)
		fillY := y + barHeight - fillHeight
		fillColor := lerpColor(ColorBarFill, ColorBarHot, ratio)
		rl.DrawRectangle(barX+int32(i)*(barWidth+gap), fillY, barWidth, fillHeight, fillColor)
	}

	if labelHeight > 0 {
		labelY := y + barHeight + 2
		for i, label := range labels {
			if label == "" {
				continue
			}
			lx := barX + int32(i)*(barWidth+gap) + barWidth/2
			textW := rl.MeasureText(label, 8)
			rl.DrawText(label, lx-textW/2, labelY, 8, ColorTextDim)
		}
	}

	return barHeight + labelHeight + 4
}

// DrawAngle renders a compass-style dial. Zero points straight down,
// matching the pendulum convention of measuring from the rest position.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	size := int32(40)
	centerX := x + 60 + size/2
	centerY := y + size/2

	// Label
	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	// Circle background
	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Needle uses arm geometry: x grows with sin, y with cos, so zero
	// hangs straight down and the dial reads like the pendulum itself.
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Sin(radians))
	endY := float32(centerY) + needleLen*float32(math.Cos(radians))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	// Tick at the upper dead center, where a flip registers
	rl.DrawLine(centerX, centerY-size/2, centerX, centerY-size/2+4, ColorBarHot)

	// Degree text
	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+60+size+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Indicator
	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawField renders a field using the widget its descriptor selects.
func DrawField(x, y int32, fd components.FieldDescriptor, value float64) int32 {
	switch {
	case fd.IsAngle:
		return DrawAngle(x, y, fd.Label, value)
	case fd.IsCentered && fd.IsBar:
		return DrawCenteredBar(x, y, fd.Label, float32(value), float32(fd.Min), float32(fd.Max))
	case fd.IsBar:
		return DrawBar(x, y, fd.Label, float32(value), float32(fd.Max))
	default:
		return DrawLabel(x, y, fd.Label, fmt.Sprintf(fd.Format, value))
	}
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
