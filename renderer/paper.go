package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/texture"
)

// paperInk is the fiber and speck color before per-element alpha.
var paperInk = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// PaperRenderer bakes the static paper pattern into a render texture once and
// tiles it with the state-driven opacity.
type PaperRenderer struct {
	target      rl.RenderTexture2D
	tileSize    float64
	initialized bool
}

// NewPaperRenderer creates a new paper renderer.
func NewPaperRenderer() *PaperRenderer {
	return &PaperRenderer{}
}

func (p *PaperRenderer) bake(pt texture.PaperTexture) {
	if p.initialized {
		rl.UnloadRenderTexture(p.target)
	}
	size := int32(pt.TileSize)
	p.target = rl.LoadRenderTexture(size, size)
	p.tileSize = pt.TileSize

	rl.BeginTextureMode(p.target)
	rl.ClearBackground(rl.Blank)
	for _, f := range pt.Fibers {
		ink := paperInk
		ink.A = alphaByte(f.Alpha)
		rl.DrawLineEx(
			rl.Vector2{X: float32(f.X1), Y: float32(f.Y1)},
			rl.Vector2{X: float32(f.X2), Y: float32(f.Y2)},
			float32(f.Width), ink)
	}
	for _, d := range pt.Dots {
		ink := paperInk
		ink.A = alphaByte(d.Alpha)
		rl.DrawCircleV(rl.Vector2{X: float32(d.X), Y: float32(d.Y)}, float32(d.Radius), ink)
	}
	rl.EndTextureMode()

	rl.SetTextureFilter(p.target.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(p.target.Texture, rl.WrapRepeat)
	p.initialized = true
}

// Draw tiles the paper over the frame.
func (p *PaperRenderer) Draw(pt texture.PaperTexture, width, height float64) {
	if pt.Opacity <= 0 || pt.TileSize <= 0 {
		return
	}
	if !p.initialized || pt.TileSize != p.tileSize {
		p.bake(pt)
	}

	src := tileSource(p.tileSize, p.tileSize, width, height)
	src.Height = -src.Height // Render textures are stored upside down
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(width), Height: float32(height)}
	rl.DrawTexturePro(p.target.Texture, src, dst, rl.Vector2{}, 0, rl.Fade(rl.White, float32(pt.Opacity)))
}

// Unload frees resources.
func (p *PaperRenderer) Unload() {
	if p.initialized {
		rl.UnloadRenderTexture(p.target)
		p.initialized = false
	}
}
