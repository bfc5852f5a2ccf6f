package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/effects"
	"github.com/pthm-cable/dusk/palette"
)

// Halo geometry relative to the particle size.
const (
	haloRadius  = 3.0
	haloOpacity = 0.8
)

// LightRenderer draws ambient light particles as a solid core inside a soft
// radial halo.
type LightRenderer struct{}

// NewLightRenderer creates a new light renderer.
func NewLightRenderer() *LightRenderer {
	return &LightRenderer{}
}

// Draw renders the sampled glows. An empty slice (reduced motion, or not yet
// active) draws nothing.
func (l *LightRenderer) Draw(glows []effects.Glow, c palette.RGB) {
	for _, g := range glows {
		if g.Opacity <= 0 || g.Size <= 0 {
			continue
		}
		center := rl.Vector2{X: float32(g.X), Y: float32(g.Y)}

		rl.DrawCircleGradient(int32(g.X), int32(g.Y), float32(g.Size*haloRadius),
			rgba(c, g.Opacity*haloOpacity), rgba(c, 0))
		rl.DrawCircleV(center, float32(g.Size/2), rgba(c, g.Opacity))
	}
}
