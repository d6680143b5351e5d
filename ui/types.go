// Package ui provides the HUD, status panels, and overlay toggles for
// the interactive renderer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds the colors and layout metrics shared by the panels.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default panel styling: dark translucent
// panels that sit over the canvas without hiding it.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 16, G: 20, B: 28, A: 236},
		PanelBorder:    rl.Color{R: 70, G: 80, B: 95, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 38, G: 42, B: 48, A: 255},
		BarFill:        rl.Color{R: 95, G: 145, B: 210, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
