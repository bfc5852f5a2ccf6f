package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/palette"
)

const (
	horizonThickness = 2
	horizonGlow      = 3 // Extra rows above and below for the soft glow
)

// gradientStop is a horizontal stop: fraction of the width and relative alpha.
type gradientStop struct {
	At    float64
	Alpha float64
}

// horizonStops fades the line in from both edges and peaks at the center.
var horizonStops = []gradientStop{
	{At: 0, Alpha: 0},
	{At: 0.2, Alpha: 1},
	{At: 0.5, Alpha: 1.2},
	{At: 0.8, Alpha: 1},
	{At: 1, Alpha: 0},
}

// glowStops is the fainter band drawn around the line.
var glowStops = []gradientStop{
	{At: 0, Alpha: 0},
	{At: 0.2, Alpha: 0.3},
	{At: 0.5, Alpha: 0.5},
	{At: 0.8, Alpha: 0.3},
	{At: 1, Alpha: 0},
}

// HorizonRenderer draws the thin accent line across the frame.
type HorizonRenderer struct{}

// NewHorizonRenderer creates a new horizon renderer.
func NewHorizonRenderer() *HorizonRenderer {
	return &HorizonRenderer{}
}

// Draw renders the line at y with the given color and base opacity.
func (h *HorizonRenderer) Draw(c palette.RGB, opacity, y, width float64) {
	if opacity <= 0 || width <= 0 {
		return
	}
	drawStops(glowStops, c, opacity, int32(y)-horizonGlow, horizonThickness+2*horizonGlow, width)
	drawStops(horizonStops, c, opacity, int32(y), horizonThickness, width)
}

// drawStops fills one horizontal gradient segment per pair of stops.
func drawStops(stops []gradientStop, c palette.RGB, opacity float64, y, height int32, width float64) {
	for i := 0; i+1 < len(stops); i++ {
		a, b := stops[i], stops[i+1]
		x0 := int32(a.At * width)
		x1 := int32(b.At * width)
		if x1 <= x0 {
			continue
		}
		rl.DrawRectangleGradientH(x0, y, x1-x0, height,
			rgba(c, a.Alpha*opacity), rgba(c, b.Alpha*opacity))
	}
}
