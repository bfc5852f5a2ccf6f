package engine

import (
	"image"
	"time"

	"github.com/pthm-cable/dusk/effects"
	"github.com/pthm-cable/dusk/palette"
	"github.com/pthm-cable/dusk/texture"
	"github.com/pthm-cable/dusk/tracker"
)

// Layer names the composited layers, back to front.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerGrain
	LayerLights
	LayerHorizon
	LayerPaper
	LayerTitle
	LayerRipples
	LayerMessage
	LayerFooter
)

// Layers is the fixed draw order. Color and grain always sit behind ripples.
var Layers = []Layer{
	LayerBackground,
	LayerGrain,
	LayerLights,
	LayerHorizon,
	LayerPaper,
	LayerTitle,
	LayerRipples,
	LayerMessage,
	LayerFooter,
}

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerGrain:
		return "grain"
	case LayerLights:
		return "lights"
	case LayerHorizon:
		return "horizon"
	case LayerPaper:
		return "paper"
	case LayerTitle:
		return "title"
	case LayerRipples:
		return "ripples"
	case LayerMessage:
		return "message"
	case LayerFooter:
		return "footer"
	}
	return "unknown"
}

// Message is the long-press reveal as drawn on one frame.
type Message struct {
	Text      string
	Visible   bool
	Remaining time.Duration // Until dismissal, while visible
	Hold      float64       // Press progress toward reveal in [0, 1]
}

// Composition is everything the renderer needs to draw one frame.
type Composition struct {
	Now    time.Time
	Width  float64
	Height float64
	State  tracker.State

	Background palette.RGB // Displayed color, mid-transition if one is running

	Grain         texture.GrainTexture
	GrainTile     *image.NRGBA
	GrainRebuilt  bool // Tile rasterized for this frame; revisited levels reuse a cached tile
	GrainTileSize float64

	Lights     []effects.Glow
	LightColor palette.RGB

	Horizon        palette.RGB
	HorizonOpacity float64
	HorizonY       float64 // Pixels from the top

	Paper texture.PaperTexture

	Ripples     []effects.RingFrame
	RippleColor palette.RGB

	Title    string
	Message  Message
	Visitors int
}

// Frame samples every layer at now for a width x height surface.
func (e *Engine) Frame(now time.Time, width, height float64) Composition {
	d := e.derived
	tile, rebuilt := e.grain.Get(d.Grain)

	return Composition{
		Now:    now,
		Width:  width,
		Height: height,
		State:  d.State,

		Background: e.bg.Current(now),

		Grain:         d.Grain,
		GrainTile:     tile,
		GrainRebuilt:  rebuilt,
		GrainTileSize: float64(e.cfg.Grain.TileSize),

		Lights:     e.lights.Sample(now, width, height),
		LightColor: palette.FromConfig(e.cfg.Lights.Color),

		Horizon:        d.Horizon,
		HorizonOpacity: d.HorizonOpacity,
		HorizonY:       height * e.cfg.Horizon.Y,

		Paper: d.Paper,

		Ripples:     e.ripples.Sample(now),
		RippleColor: palette.FromConfig(e.cfg.Ripple.Color),

		Title:    e.cfg.Screen.Title,
		Message:  e.message(now),
		Visitors: e.visitors,
	}
}

func (e *Engine) message(now time.Time) Message {
	m := Message{Text: e.cfg.LongPress.Message, Visible: e.press.Visible()}
	if m.Visible {
		m.Remaining = max(e.press.ExpiresAt().Sub(now), 0)
		return m
	}
	if started := e.press.StartedAt(); !started.IsZero() && e.cfg.Derived.LongPressHold > 0 {
		m.Hold = min(float64(now.Sub(started))/float64(e.cfg.Derived.LongPressHold), 1)
	}
	return m
}
