package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/effects"
	"github.com/pthm-cable/dusk/palette"
)

const (
	ringBaseRadius = 60.0 // Radius of the unscaled ring
	ringBorder     = 1.5  // Stroke width of the unscaled ring
	ringGlow       = 7.5  // Half-width of the soft band around the stroke
	ringGlowAlpha  = 0.4  // Relative to the ring opacity
	ringSegments   = 96
	minRingRadius  = 0.5
)

// RippleRenderer draws click ripples as thin expanding rings.
type RippleRenderer struct{}

// NewRippleRenderer creates a new ripple renderer.
func NewRippleRenderer() *RippleRenderer {
	return &RippleRenderer{}
}

// Draw renders all rings in the order given.
func (r *RippleRenderer) Draw(rings []effects.RingFrame, c palette.RGB) {
	for _, ring := range rings {
		if ring.Radius < minRingRadius || ring.Opacity <= 0 {
			continue
		}
		center := rl.Vector2{X: float32(ring.X), Y: float32(ring.Y)}
		outer := float32(ring.Radius)

		// The ring scales as a whole, so stroke and glow widen with it.
		scale := ring.Radius / ringBaseRadius
		stroke := float32(max(ringBorder*scale, 1))
		glow := float32(ringGlow * scale)

		rl.DrawRing(center, max(outer-glow, 0), outer+glow, 0, 360, ringSegments,
			rgba(c, ring.Opacity*ringGlowAlpha))
		rl.DrawRing(center, max(outer-stroke, 0), outer, 0, 360, ringSegments,
			rgba(c, ring.Opacity))
	}
}
