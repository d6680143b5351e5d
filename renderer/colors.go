package renderer

import (
	"image/color"
	"math"
)

// Running regions take the original palette's softer saturation so the
// live shimmer reads differently from the saturated flip-time bands.
const (
	runningSaturation = 0.7
	runningValue      = 1.0
)

// RunningColor maps the second arm's current angle onto the hue wheel.
// The angle is taken mod 2pi so unwrapped angles keep cycling through
// the palette while the pendulum spins.
func RunningColor(theta2 float64) color.RGBA {
	turn := math.Mod(theta2, 2*math.Pi)
	if turn < 0 {
		turn += 2 * math.Pi
	}
	hue := turn / (2 * math.Pi) * 360
	r, g, b := hsvToRGB(hue, runningSaturation, runningValue)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FlippedColor maps a flip time onto the hue wheel at hueRate degrees
// per simulated second. Nearby flip times land on nearby hues, which
// is what makes the converged fractal bands visible.
func FlippedColor(flipTime, hueRate float64) color.RGBA {
	hue := math.Mod(flipTime*hueRate, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := hsvToRGB(hue, 1.0, 1.0)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// TimedOutColor is the fixed neutral for regions that never flipped.
func TimedOutColor(gray uint8) color.RGBA {
	return color.RGBA{R: gray, G: gray, B: gray, A: 255}
}

// hsvToRGB converts HSV to RGB. Hue is in degrees, saturation and
// value in [0, 1].
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
