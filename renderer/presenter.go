package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CanvasPresenter uploads the CPU canvas to a GPU texture and draws it
// under the camera transform. Point filtering keeps region boundaries
// crisp when zoomed in.
type CanvasPresenter struct {
	tex         rl.Texture2D
	texW, texH  int
	initialized bool
}

// NewCanvasPresenter creates a presenter. The GPU texture is created
// lazily on the first upload so construction works before the raylib
// window exists.
func NewCanvasPresenter() *CanvasPresenter {
	return &CanvasPresenter{}
}

// Init creates the GPU texture (must be called after the raylib window
// is created).
func (p *CanvasPresenter) Init(width, height int) {
	if p.initialized {
		return
	}

	img := rl.GenImageColor(width, height, rl.Black)
	p.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(p.tex, rl.FilterPoint)

	p.texW = width
	p.texH = height
	p.initialized = true
}

// Upload pushes the canvas pixels to the GPU texture.
func (p *CanvasPresenter) Upload(c *Canvas) {
	if !p.initialized {
		p.Init(c.Width(), c.Height())
	}
	rl.UpdateTexture(p.tex, c.Pix())
}

// Draw renders the canvas with its top-left corner at screen position
// (sx, sy), scaled by zoom.
func (p *CanvasPresenter) Draw(sx, sy, zoom float32) {
	if !p.initialized {
		return
	}

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(p.texW), Height: float32(p.texH)}
	dstRect := rl.Rectangle{
		X:      sx,
		Y:      sy,
		Width:  float32(p.texW) * zoom,
		Height: float32(p.texH) * zoom,
	}
	rl.DrawTexturePro(p.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees the GPU texture.
func (p *CanvasPresenter) Unload() {
	if !p.initialized {
		return
	}
	rl.UnloadTexture(p.tex)
	p.initialized = false
}
