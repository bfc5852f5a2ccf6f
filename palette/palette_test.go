package palette

import (
	"testing"
	"time"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/tracker"
)

func defaultPalette() Palette {
	return New(config.Default())
}

func state(elapsed, level int) tracker.State {
	return tracker.State{ElapsedSeconds: elapsed, Cap: 180, ClickLevel: level, MaxLevel: 18}
}

func TestBackgroundScenarios(t *testing.T) {
	p := defaultPalette()

	tests := []struct {
		name    string
		elapsed int
		level   int
		want    RGB
	}{
		{"base", 0, 0, RGB{252, 248, 242}},
		{"time target", 180, 0, RGB{253, 246, 238}},
		{"click target", 0, 18, RGB{210, 185, 155}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Background(state(tt.elapsed, tt.level), p); got != tt.want {
				t.Errorf("Background(%d, %d) = %v, want %v", tt.elapsed, tt.level, got, tt.want)
			}
		})
	}
}

func TestBackgroundTimeClampIdempotent(t *testing.T) {
	p := defaultPalette()
	for level := 0; level <= 18; level++ {
		atCap := Background(state(180, level), p)
		for _, elapsed := range []int{181, 240, 1000} {
			if got := Background(state(elapsed, level), p); got != atCap {
				t.Errorf("level %d: elapsed %d gave %v, want %v", level, elapsed, got, atCap)
			}
		}
	}
}

func TestBackgroundSquareRootEasing(t *testing.T) {
	p := defaultPalette()
	// Level 1 of 18: sqrt(1/18) ~ 0.2357, so red drops by floor-adjusted ~9.9.
	got := Background(state(0, 1), p)
	if got.R != 242 {
		t.Errorf("R at level 1 = %d, want 242", got.R)
	}
	// The first click moves more than a linear curve would (42/18 ~ 2.3).
	if 252-int(got.R) <= 3 {
		t.Errorf("first click shift too small: %d", 252-int(got.R))
	}
}

func TestBackgroundMonotonicInClicks(t *testing.T) {
	p := defaultPalette()
	prev := Background(state(90, 0), p)
	for level := 1; level <= 18; level++ {
		cur := Background(state(90, level), p)
		if cur.R > prev.R || cur.G > prev.G || cur.B > prev.B {
			t.Errorf("level %d brightened: %v -> %v", level, prev, cur)
		}
		prev = cur
	}
}

func TestBackgroundIgnoresReducedMotion(t *testing.T) {
	p := defaultPalette()
	s := state(60, 5)
	r := s
	r.ReducedMotion = true
	if Background(s, p) != Background(r, p) {
		t.Error("reduced motion changed the background color")
	}
}

func TestBackgroundClampsExtremeEndpoints(t *testing.T) {
	p := Palette{
		Base:        RGB{250, 5, 128},
		TimeTarget:  RGB{255, 0, 128},
		ClickTarget: RGB{255, 0, 128},
	}
	got := Background(state(180, 18), p)
	if got.R != 255 || got.G != 0 {
		t.Errorf("expected clamped channels, got %v", got)
	}
}

func TestHorizon(t *testing.T) {
	p := defaultPalette()

	c, op := Horizon(state(0, 0), p)
	if c != (RGB{200, 190, 175}) || op != 0.15 {
		t.Errorf("start horizon = %v @ %v", c, op)
	}

	c, op = Horizon(state(180, 0), p)
	if c != (RGB{180, 175, 165}) {
		t.Errorf("end horizon color = %v", c)
	}
	if op < 0.2499 || op > 0.2501 {
		t.Errorf("end horizon opacity = %v, want 0.25", op)
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{252, 248, 242}).Hex(); got != "#fcf8f2" {
		t.Errorf("Hex = %q", got)
	}
}

func TestTransition(t *testing.T) {
	start := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	from := RGB{252, 248, 242}
	to := RGB{210, 185, 155}

	tr := NewTransition(from, time.Second)
	tr.Retarget(to, start)

	if tr.Target() != to {
		t.Errorf("target = %v, want %v", tr.Target(), to)
	}
	if got := tr.Current(start); got != from {
		t.Errorf("current at start = %v, want %v", got, from)
	}
	mid := tr.Current(start.Add(500 * time.Millisecond))
	if mid.R >= from.R || mid.R <= to.R {
		t.Errorf("midpoint R = %d not between %d and %d", mid.R, to.R, from.R)
	}
	if got := tr.Current(start.Add(time.Second)); got != to {
		t.Errorf("current at end = %v, want %v", got, to)
	}
}

func TestTransitionInstantWhenDisabled(t *testing.T) {
	now := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	tr := NewTransition(RGB{252, 248, 242}, time.Second)
	tr.SetDuration(0)
	tr.Retarget(RGB{1, 2, 3}, now)
	if got := tr.Current(now); got != (RGB{1, 2, 3}) {
		t.Errorf("instant transition = %v", got)
	}
}
