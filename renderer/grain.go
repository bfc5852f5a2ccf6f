package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/engine"
)

// GrainRenderer tiles the rasterized grain across the frame. The texture is
// re-uploaded only when the engine hands over a different tile.
type GrainRenderer struct {
	tex         rl.Texture2D
	size        int
	img         *image.NRGBA
	uploads     int
	initialized bool
}

// NewGrainRenderer creates a new grain renderer.
func NewGrainRenderer() *GrainRenderer {
	return &GrainRenderer{}
}

// Sync uploads the composition's grain tile if it differs from the one on
// the GPU.
func (g *GrainRenderer) Sync(c engine.Composition) {
	if c.GrainTile != nil && c.GrainTile != g.img {
		g.upload(c.GrainTile)
	}
}

// Draw tiles the grain over the background.
func (g *GrainRenderer) Draw(c engine.Composition) {
	if c.GrainTile == nil {
		return
	}
	g.Sync(c)

	// The shared opacity scales the whole stack on top of each layer's own.
	tint := rl.Fade(rl.White, float32(c.Grain.BaseOpacity))
	src := tileSource(float64(g.size), c.GrainTileSize, c.Width, c.Height)
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(c.Width), Height: float32(c.Height)}
	rl.DrawTexturePro(g.tex, src, dst, rl.Vector2{}, 0, tint)
}

// Uploads returns how many times the texture has been written.
func (g *GrainRenderer) Uploads() int {
	return g.uploads
}

func (g *GrainRenderer) upload(img *image.NRGBA) {
	size := img.Bounds().Dx()
	g.img = img
	g.uploads++

	if g.initialized && size == g.size {
		rl.UpdateTexture(g.tex, nrgbaPixels(img))
		return
	}
	if g.initialized {
		rl.UnloadTexture(g.tex)
	}

	rimg := rl.NewImageFromImage(img)
	g.tex = rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)

	rl.SetTextureFilter(g.tex, rl.FilterBilinear)
	rl.SetTextureWrap(g.tex, rl.WrapRepeat)
	g.size = size
	g.initialized = true
}

// nrgbaPixels converts straight-alpha image bytes to raylib's pixel layout.
func nrgbaPixels(img *image.NRGBA) []color.RGBA {
	b := img.Bounds()
	pixels := make([]color.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			pixels = append(pixels, color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
		}
	}
	return pixels
}

// Unload frees resources.
func (g *GrainRenderer) Unload() {
	if g.initialized {
		rl.UnloadTexture(g.tex)
		g.initialized = false
		g.img = nil
	}
}
