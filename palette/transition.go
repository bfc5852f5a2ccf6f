package palette

import (
	"time"

	"github.com/pthm-cable/dusk/ease"
)

// Transition eases the displayed background toward the latest target color.
// The target is applied on the frame it changes; only the displayed value lags.
type Transition struct {
	from     RGB
	to       RGB
	start    time.Time
	duration time.Duration
	curve    ease.Func
}

// NewTransition starts at initial with the given duration.
func NewTransition(initial RGB, duration time.Duration) *Transition {
	return &Transition{
		from:     initial,
		to:       initial,
		duration: duration,
		curve:    ease.Out,
	}
}

// Target returns the color being transitioned to.
func (t *Transition) Target() RGB {
	return t.to
}

// SetDuration changes the duration of subsequent retargets.
// Zero makes every retarget instant (reduced motion).
func (t *Transition) SetDuration(d time.Duration) {
	t.duration = d
}

// Retarget starts a transition from the currently displayed color to c.
func (t *Transition) Retarget(c RGB, now time.Time) {
	if c == t.to {
		return
	}
	t.from = t.Current(now)
	t.to = c
	t.start = now
}

// Current returns the displayed color at now.
func (t *Transition) Current(now time.Time) RGB {
	if t.duration <= 0 || t.from == t.to {
		return t.to
	}
	progress := float64(now.Sub(t.start)) / float64(t.duration)
	if progress >= 1 {
		return t.to
	}

	blended := t.from.Colorful().BlendRgb(t.to.Colorful(), t.curve(progress))
	r, g, b := blended.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
