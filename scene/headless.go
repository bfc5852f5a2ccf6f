package scene

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/dusk/clock"
	"github.com/pthm-cable/dusk/engine"
)

// HeadlessOptions configures a run without a window.
type HeadlessOptions struct {
	Duration   time.Duration // Simulated time to run
	Step       time.Duration // Frame interval
	ClickEvery time.Duration // Synthetic background click interval (0 = none)
	Width      float64
	Height     float64
}

// HeadlessResult reports what a headless run did.
type HeadlessResult struct {
	Frames int
	Clicks int
	Fired  int // Scheduler tasks fired
	Last   engine.Composition
}

// RunHeadless advances the mock clock frame by frame for opts.Duration,
// sampling a composition each frame. Synthetic clicks land at random
// positions drawn from rng.
func RunHeadless(eng *engine.Engine, clk *clock.Mock, rng *rand.Rand, opts HeadlessOptions) HeadlessResult {
	if opts.Step <= 0 {
		opts.Step = time.Second / 60
	}

	var res HeadlessResult
	start := clk.Now()
	nextClick := start.Add(opts.ClickEvery)

	for clk.Now().Sub(start) < opts.Duration {
		clk.Advance(opts.Step)
		now := clk.Now()

		if opts.ClickEvery > 0 && !now.Before(nextClick) {
			eng.Click(rng.Float64()*opts.Width, rng.Float64()*opts.Height)
			res.Clicks++
			nextClick = nextClick.Add(opts.ClickEvery)
		}

		res.Fired += eng.Advance(now)
		res.Last = eng.Frame(now, opts.Width, opts.Height)
		res.Frames++
	}

	s := res.Last.State
	slog.Info("headless run complete",
		"frames", res.Frames,
		"clicks", res.Clicks,
		"elapsed", s.ElapsedSeconds,
		"click_level", s.ClickLevel,
		"background", res.Last.Background.Hex(),
	)
	return res
}
