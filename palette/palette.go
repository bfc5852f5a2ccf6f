// Package palette maps interaction state to the background and horizon colors.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/tracker"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// FromConfig converts a config triple.
func FromConfig(c config.RGB) RGB {
	return RGB{R: c[0], G: c[1], B: c[2]}
}

// Colorful converts to a go-colorful color for blending.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Palette holds the color endpoints the blend functions interpolate between.
type Palette struct {
	Base        RGB
	TimeTarget  RGB
	ClickTarget RGB

	HorizonBase        RGB
	HorizonTarget      RGB
	HorizonMinOpacity  float64
	HorizonOpacitySpan float64
}

// New builds a palette from configuration.
func New(cfg *config.Config) Palette {
	return Palette{
		Base:               FromConfig(cfg.Colors.Base),
		TimeTarget:         FromConfig(cfg.Colors.TimeTarget),
		ClickTarget:        FromConfig(cfg.Colors.ClickTarget),
		HorizonBase:        FromConfig(cfg.Horizon.Base),
		HorizonTarget:      FromConfig(cfg.Horizon.Target),
		HorizonMinOpacity:  cfg.Horizon.MinOpacity,
		HorizonOpacitySpan: cfg.Horizon.OpacitySpan,
	}
}

// Background returns the page background color for a snapshot.
//
// Time moves the color linearly from Base toward TimeTarget. Clicks add
// (ClickTarget - Base) scaled by the square root of click progress, so the
// first clicks shift the color the most. The two shifts are additive. Reduced
// motion does not change the color.
func Background(s tracker.State, p Palette) RGB {
	tp := s.TimeProgress()
	cp := math.Sqrt(s.ClickProgress())

	channel := func(base, timeTarget, clickTarget uint8) uint8 {
		b := float64(base)
		v := b + (float64(timeTarget)-b)*tp
		v += (float64(clickTarget) - b) * cp
		return clampChannel(math.Floor(v))
	}

	return RGB{
		R: channel(p.Base.R, p.TimeTarget.R, p.ClickTarget.R),
		G: channel(p.Base.G, p.TimeTarget.G, p.ClickTarget.G),
		B: channel(p.Base.B, p.TimeTarget.B, p.ClickTarget.B),
	}
}

// Horizon returns the horizon accent color and opacity for a snapshot.
// The line cools slightly and grows more visible with dwell time.
func Horizon(s tracker.State, p Palette) (RGB, float64) {
	tp := s.TimeProgress()

	lerp := func(a, b uint8) uint8 {
		return clampChannel(math.Floor(float64(a) + (float64(b)-float64(a))*tp))
	}

	c := RGB{
		R: lerp(p.HorizonBase.R, p.HorizonTarget.R),
		G: lerp(p.HorizonBase.G, p.HorizonTarget.G),
		B: lerp(p.HorizonBase.B, p.HorizonTarget.B),
	}
	return c, p.HorizonMinOpacity + tp*p.HorizonOpacitySpan
}

// clampChannel keeps a floored channel within [0, 255].
// The shipped endpoints never reach the bounds.
func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
