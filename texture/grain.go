package texture

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/tracker"
)

// NoiseLayerSpec describes one fractal noise layer.
type NoiseLayerSpec struct {
	Seed          int
	BaseFrequency float64 // Cycles per raster pixel
	OctaveCount   int
	Opacity       float64
}

// GrainTexture is the stacked grain description for one click level.
type GrainTexture struct {
	ClickLevel  int
	BaseOpacity float64
	Layers      []NoiseLayerSpec
}

// Key identifies the noise pattern. Two textures with equal keys rasterize
// identically, so rasterization only reruns when the click level changes.
func (g GrainTexture) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grain-%d", g.ClickLevel)
	for _, l := range g.Layers {
		fmt.Fprintf(&b, "|%d:%.4f:%d:%.4f", l.Seed, l.BaseFrequency, l.OctaveCount, l.Opacity)
	}
	return b.String()
}

// GrainOpacity returns the shared base opacity: linear in click progress
// from cfg.MinOpacity to cfg.MaxOpacity.
func GrainOpacity(s tracker.State, cfg config.GrainConfig) float64 {
	return cfg.MinOpacity + s.ClickProgress()*(cfg.MaxOpacity-cfg.MinOpacity)
}

// Grain returns the grain texture for a snapshot. Layer frequency grows with
// click progress and each seed is re-derived from the click level, so the
// pattern changes shape as well as density. Dwell time has no effect.
func Grain(s tracker.State, cfg config.GrainConfig) GrainTexture {
	base := GrainOpacity(s, cfg)
	progress := s.ClickProgress()

	layers := make([]NoiseLayerSpec, len(cfg.Layers))
	for i, l := range cfg.Layers {
		layers[i] = NoiseLayerSpec{
			Seed:          s.ClickLevel + l.SeedOffset,
			BaseFrequency: l.BaseFrequency + progress*l.Spread,
			OctaveCount:   l.Octaves,
			Opacity:       base * l.Attenuation,
		}
	}

	return GrainTexture{
		ClickLevel:  s.ClickLevel,
		BaseOpacity: base,
		Layers:      layers,
	}
}
