// Package texture describes the paper and grain overlays as pure functions of
// interaction state, and rasterizes the grain into tileable images.
package texture

import (
	"math"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/tracker"
)

// Fiber is a straight paper fiber in tile coordinates.
type Fiber struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Alpha          float64
}

// Dot is a small paper speck in tile coordinates.
type Dot struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// PaperTexture is the static fiber pattern plus its state-driven opacity.
type PaperTexture struct {
	Opacity  float64
	TileSize float64
	Fibers   []Fiber
	Dots     []Dot
}

// paperFibers and paperDots are the fixed pattern on a 100x100 tile.
var (
	paperFibers = func() []Fiber {
		fibers := make([]Fiber, 0, 8)
		for _, v := range []float64{20, 40, 60, 80} {
			fibers = append(fibers, Fiber{X1: 0, Y1: v, X2: 100, Y2: v, Width: 0.8, Alpha: 0.08})
		}
		for _, v := range []float64{20, 40, 60, 80} {
			fibers = append(fibers, Fiber{X1: v, Y1: 0, X2: v, Y2: 100, Width: 0.8, Alpha: 0.08})
		}
		return fibers
	}()

	paperDots = []Dot{
		{X: 10, Y: 10, Radius: 1, Alpha: 0.06},
		{X: 30, Y: 25, Radius: 1, Alpha: 0.06},
		{X: 50, Y: 15, Radius: 1, Alpha: 0.06},
		{X: 70, Y: 30, Radius: 1, Alpha: 0.06},
		{X: 90, Y: 20, Radius: 1, Alpha: 0.06},
		{X: 15, Y: 45, Radius: 0.8, Alpha: 0.05},
		{X: 55, Y: 55, Radius: 0.8, Alpha: 0.05},
		{X: 85, Y: 75, Radius: 0.8, Alpha: 0.05},
	}
)

// paperPatternSize is the side of the tile the fixed pattern is authored on.
const paperPatternSize = 100.0

// Paper returns the paper texture for a snapshot. Time and clicks both add
// opacity, capped at cfg.MaxOpacity. The pattern never changes.
func Paper(s tracker.State, cfg config.PaperConfig) PaperTexture {
	opacity := cfg.BaseOpacity + s.TimeProgress()*cfg.TimeWeight + float64(s.ClickLevel)*cfg.ClickWeight
	opacity = math.Min(opacity, cfg.MaxOpacity)

	tile := float64(cfg.TileSize)
	if tile <= 0 {
		tile = paperPatternSize
	}
	scale := tile / paperPatternSize

	fibers := make([]Fiber, len(paperFibers))
	for i, f := range paperFibers {
		fibers[i] = Fiber{
			X1: f.X1 * scale, Y1: f.Y1 * scale,
			X2: f.X2 * scale, Y2: f.Y2 * scale,
			Width: f.Width * scale,
			Alpha: f.Alpha,
		}
	}
	dots := make([]Dot, len(paperDots))
	for i, d := range paperDots {
		dots[i] = Dot{X: d.X * scale, Y: d.Y * scale, Radius: d.Radius * scale, Alpha: d.Alpha}
	}

	return PaperTexture{
		Opacity:  opacity,
		TileSize: tile,
		Fibers:   fibers,
		Dots:     dots,
	}
}
