// Package renderer provides the CPU pixel canvas regions paint into,
// the color mapping from simulation outcomes to pixels, and the
// raylib presenter that puts the canvas on screen.
package renderer

import (
	"image"
	"image/color"
)

// Painter is the boundary the simulation paints through: a rectangle
// fill plus a refresh signal once a paint pass completes.
type Painter interface {
	Paint(x, y, w, h int, col color.RGBA)
	Flush()
}

// Canvas is the CPU-side pixel buffer. Pixels are stored as one
// color.RGBA per position so the buffer can be handed to the GPU
// texture upload without conversion.
type Canvas struct {
	width  int
	height int
	pix    []color.RGBA
}

// NewCanvas creates a canvas of the given size with all pixels black.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]color.RGBA, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Fill paints every pixel with the given color.
func (c *Canvas) Fill(col color.RGBA) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Paint fills the rectangle (x, y, w, h) with the given color,
// clipped to the canvas bounds.
func (c *Canvas) Paint(x, y, w, h int, col color.RGBA) {
	x0, y0 := x, y
	x1, y1 := x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.width {
		x1 = c.width
	}
	if y1 > c.height {
		y1 = c.height
	}

	for py := y0; py < y1; py++ {
		row := py * c.width
		for px := x0; px < x1; px++ {
			c.pix[row+px] = col
		}
	}
}

// Flush satisfies Painter. The canvas is always in memory; presentation
// happens in the presenter or the PNG writer.
func (c *Canvas) Flush() {}

// At returns the pixel color at (x, y), or the zero color outside the
// canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.RGBA{}
	}
	return c.pix[y*c.width+x]
}

// Pix exposes the raw pixel buffer for texture upload. Row-major,
// top-left origin.
func (c *Canvas) Pix() []color.RGBA {
	return c.pix
}

// Image copies the canvas into an image.RGBA for encoding.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for i, p := range c.pix {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}
