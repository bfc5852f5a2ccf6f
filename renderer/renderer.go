// Package renderer draws an engine.Composition with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/palette"
)

// Renderer draws every layer of a composition in engine.Layers order.
type Renderer struct {
	background *BackgroundRenderer
	grain      *GrainRenderer
	lights     *LightRenderer
	horizon    *HorizonRenderer
	paper      *PaperRenderer
	ripples    *RippleRenderer
	text       *TextRenderer
}

// New creates a renderer. GPU resources are allocated lazily on first Draw,
// which must happen after the raylib window is created.
func New() *Renderer {
	return &Renderer{
		background: NewBackgroundRenderer(),
		grain:      NewGrainRenderer(),
		lights:     NewLightRenderer(),
		horizon:    NewHorizonRenderer(),
		paper:      NewPaperRenderer(),
		ripples:    NewRippleRenderer(),
		text:       NewTextRenderer(),
	}
}

// SyncTextures uploads any texture the composition changed. Draw does this
// too; calling it first keeps uploads out of the drawing pass.
func (r *Renderer) SyncTextures(c engine.Composition) {
	r.grain.Sync(c)
}

// Draw renders the composition. The caller owns BeginDrawing/EndDrawing.
func (r *Renderer) Draw(c engine.Composition) {
	for _, layer := range engine.Layers {
		switch layer {
		case engine.LayerBackground:
			r.background.Draw(c.Background)
		case engine.LayerGrain:
			r.grain.Draw(c)
		case engine.LayerLights:
			r.lights.Draw(c.Lights, c.LightColor)
		case engine.LayerHorizon:
			r.horizon.Draw(c.Horizon, c.HorizonOpacity, c.HorizonY, c.Width)
		case engine.LayerPaper:
			r.paper.Draw(c.Paper, c.Width, c.Height)
		case engine.LayerTitle:
			r.text.DrawTitle(c.Title, c.Message.Hold, c.Width, c.Height)
		case engine.LayerRipples:
			r.ripples.Draw(c.Ripples, c.RippleColor)
		case engine.LayerMessage:
			r.text.DrawMessage(c.Message, c.Width, c.Height)
		case engine.LayerFooter:
			r.text.DrawFooter(c.Visitors, c.Width, c.Height)
		}
	}
}

// GrainUploads returns how many times the grain texture has been written.
func (r *Renderer) GrainUploads() int {
	return r.grain.Uploads()
}

// Unload frees resources.
func (r *Renderer) Unload() {
	r.grain.Unload()
	r.paper.Unload()
}

// rgba converts a palette color with an alpha in [0, 1].
func rgba(c palette.RGB, alpha float64) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alphaByte(alpha)}
}

func alphaByte(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	}
	return uint8(a*255 + 0.5)
}

// tileSource returns the source rectangle that repeats a texture of texSize
// pixels every tileSize screen pixels across a width x height area. The
// texture must use rl.WrapRepeat.
func tileSource(texSize, tileSize, width, height float64) rl.Rectangle {
	if tileSize <= 0 {
		tileSize = texSize
	}
	scale := texSize / tileSize
	return rl.Rectangle{X: 0, Y: 0, Width: float32(width * scale), Height: float32(height * scale)}
}
