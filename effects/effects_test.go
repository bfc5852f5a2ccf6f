package effects

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/schedule"
)

var epoch = time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)

type clickCounter struct{ n int }

func (c *clickCounter) RegisterClick() { c.n++ }

func newLights(t *testing.T, seed int64) (*Lights, *schedule.Scheduler) {
	t.Helper()
	sched := schedule.New(epoch)
	l := NewLights(ecs.NewWorld(), sched, rand.New(rand.NewSource(seed)), config.Default())
	return l, sched
}

func newRipples(t *testing.T) (*Ripples, *schedule.Scheduler, *clickCounter) {
	t.Helper()
	sched := schedule.New(epoch)
	clicks := &clickCounter{}
	return NewRipples(ecs.NewWorld(), sched, clicks, config.Default()), sched, clicks
}

// ---------- Lights ----------

func TestLightsActivateWithinDelayWindow(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		l, sched := newLights(t, seed)
		l.Start()
		if l.Phase() != LightsPending {
			t.Fatalf("seed %d: phase = %v, want pending", seed, l.Phase())
		}

		sched.Advance(epoch.Add(1999 * time.Millisecond))
		if l.Phase() != LightsPending || l.Len() != 0 {
			t.Fatalf("seed %d: activated before 2s", seed)
		}

		sched.Advance(epoch.Add(4 * time.Second))
		if l.Phase() != LightsActive {
			t.Fatalf("seed %d: not active by 4s", seed)
		}
		if l.Len() != 8 {
			t.Errorf("seed %d: pool = %d, want 8", seed, l.Len())
		}
	}
}

func TestLightsParticleRanges(t *testing.T) {
	l, sched := newLights(t, 7)
	l.Start()
	sched.Advance(epoch.Add(5 * time.Second))

	particles := l.Particles()
	if len(particles) != 8 {
		t.Fatalf("pool = %d, want 8", len(particles))
	}
	for i, p := range particles {
		if p.ID != i {
			t.Errorf("particle %d has id %d", i, p.ID)
		}
		if p.XPercent < 0 || p.XPercent > 100 || p.YPercent < 0 || p.YPercent > 100 {
			t.Errorf("particle %d position out of range: (%v, %v)", i, p.XPercent, p.YPercent)
		}
		if p.AppearDelay < 0 || p.AppearDelay > time.Second {
			t.Errorf("particle %d delay = %v", i, p.AppearDelay)
		}
		if p.CycleDuration < 4*time.Second || p.CycleDuration > 8*time.Second {
			t.Errorf("particle %d cycle = %v", i, p.CycleDuration)
		}
		if p.SizePx < 3 || p.SizePx > 7 {
			t.Errorf("particle %d size = %v", i, p.SizePx)
		}
		if p.PeakOpacity < 0.3 || p.PeakOpacity > 0.6 {
			t.Errorf("particle %d opacity = %v", i, p.PeakOpacity)
		}
	}
}

func TestLightsSampleLoops(t *testing.T) {
	l, sched := newLights(t, 3)
	l.Start()
	sched.Advance(epoch.Add(5 * time.Second))

	p := l.Particles()[0]
	start := l.activatedAt.Add(p.AppearDelay)

	find := func(glows []Glow) (Glow, bool) {
		for _, g := range glows {
			if g.ID == p.ID {
				return g, true
			}
		}
		return Glow{}, false
	}

	// Start of a cycle: invisible and at its anchor
	g, ok := find(l.Sample(start, 1000, 500))
	if !ok {
		t.Fatal("particle missing at cycle start")
	}
	if g.Opacity != 0 || g.Size != 0 {
		t.Errorf("cycle start opacity=%v size=%v, want 0", g.Opacity, g.Size)
	}
	if math.Abs(g.X-p.XPercent*10) > 1e-9 || math.Abs(g.Y-p.YPercent*5) > 1e-9 {
		t.Errorf("cycle start position = (%v, %v)", g.X, g.Y)
	}

	// Mid-cycle: peak opacity
	g, _ = find(l.Sample(start.Add(p.CycleDuration/2), 1000, 500))
	if math.Abs(g.Opacity-p.PeakOpacity) > 1e-6 {
		t.Errorf("mid-cycle opacity = %v, want %v", g.Opacity, p.PeakOpacity)
	}

	// Same phase three cycles later: identical sample
	later, _ := find(l.Sample(start.Add(3*p.CycleDuration+p.CycleDuration/2), 1000, 500))
	if later != g {
		t.Errorf("cycle did not loop: %+v vs %+v", later, g)
	}
}

func TestLightsHiddenBeforeStagger(t *testing.T) {
	l, sched := newLights(t, 11)
	l.Start()
	sched.Advance(epoch.Add(5 * time.Second))

	visible := l.Sample(l.activatedAt, 100, 100)
	for _, g := range visible {
		p := l.Particles()[g.ID]
		if p.AppearDelay > 0 {
			t.Errorf("particle %d visible before its %v delay", g.ID, p.AppearDelay)
		}
	}
}

func TestLightsReducedMotionNeverGenerates(t *testing.T) {
	l, sched := newLights(t, 5)
	l.SetReducedMotion(true)
	l.Start()

	for s := 0; s <= 600; s += 30 {
		now := epoch.Add(time.Duration(s) * time.Second)
		sched.Advance(now)
		if l.Len() != 0 {
			t.Fatalf("pool generated at %ds under reduced motion", s)
		}
		if glows := l.Sample(now, 100, 100); len(glows) != 0 {
			t.Fatalf("sampled %d glows under reduced motion", len(glows))
		}
	}
	if sched.Len() != 0 {
		t.Errorf("pending tasks = %d, want 0", sched.Len())
	}
}

func TestLightsReducedMotionLiveToggle(t *testing.T) {
	l, sched := newLights(t, 9)
	l.Start()

	// Enabling reduced motion while pending cancels the activation
	l.SetReducedMotion(true)
	sched.Advance(epoch.Add(10 * time.Second))
	if l.Phase() != LightsDormant || l.Len() != 0 {
		t.Fatalf("phase = %v len = %d after gating pending lights", l.Phase(), l.Len())
	}

	// Disabling re-arms
	l.SetReducedMotion(false)
	if l.Phase() != LightsPending {
		t.Fatalf("phase = %v, want pending after re-enable", l.Phase())
	}
	sched.Advance(epoch.Add(20 * time.Second))
	if l.Len() != 8 {
		t.Fatalf("pool = %d after re-arm, want 8", l.Len())
	}

	// Gating an active pool drops it
	l.SetReducedMotion(true)
	if l.Len() != 0 || l.Sample(epoch.Add(21*time.Second), 100, 100) != nil {
		t.Error("active pool survived reduced motion")
	}
}

func TestLightsCloseCancelsActivation(t *testing.T) {
	l, sched := newLights(t, 2)
	l.Start()
	l.Close()
	sched.Advance(epoch.Add(time.Minute))

	if l.Len() != 0 || sched.Len() != 0 {
		t.Errorf("closed lights: len=%d pending=%d", l.Len(), sched.Len())
	}
	l.SetReducedMotion(true)
	l.SetReducedMotion(false)
	if l.Phase() != LightsDormant {
		t.Error("closed lights re-armed")
	}
}

// ---------- Ripples ----------

func TestRippleLifetimeWindow(t *testing.T) {
	r, sched, _ := newRipples(t)
	sched.Advance(epoch.Add(time.Second))
	created := sched.Now()
	rp := r.Spawn(100, 200, 0, 0)

	for _, d := range []time.Duration{0, 1, 600 * time.Millisecond, 1199 * time.Millisecond} {
		now := created.Add(d)
		sched.Advance(now)
		if len(r.Active(now)) != 1 {
			t.Errorf("ripple missing at +%v", d)
		}
	}

	now := created.Add(1200 * time.Millisecond)
	sched.Advance(now)
	if len(r.Active(now)) != 0 || r.Len() != 0 {
		t.Errorf("ripple %d still present at +1200ms", rp.ID)
	}
}

func TestRippleForwardsClickAndPositionsRelative(t *testing.T) {
	r, _, clicks := newRipples(t)
	rp := r.Spawn(150, 90, 50, 40)

	if clicks.n != 1 {
		t.Errorf("clicks forwarded = %d, want 1", clicks.n)
	}
	if rp.OriginX != 100 || rp.OriginY != 50 {
		t.Errorf("origin = (%v, %v), want (100, 50)", rp.OriginX, rp.OriginY)
	}
}

func TestRipplesCoexistInInsertionOrder(t *testing.T) {
	r, sched, _ := newRipples(t)
	for i := 0; i < 5; i++ {
		r.Spawn(float64(i), 0, 0, 0)
		sched.Advance(sched.Now().Add(100 * time.Millisecond))
	}

	active := r.Active(sched.Now())
	if len(active) != 5 {
		t.Fatalf("active = %d, want 5", len(active))
	}
	for i, rp := range active {
		if rp.ID != uint64(i) {
			t.Errorf("position %d has id %d", i, rp.ID)
		}
	}

	// First ripple expires first; the rest keep their order
	sched.Advance(epoch.Add(1250 * time.Millisecond))
	active = r.Active(sched.Now())
	if len(active) != 4 || active[0].ID != 1 {
		t.Errorf("after first expiry active = %+v", active)
	}
}

func TestRippleSampleGeometry(t *testing.T) {
	r, _, _ := newRipples(t)
	r.Spawn(10, 20, 0, 0)

	start := r.Sample(epoch)
	if len(start) != 1 {
		t.Fatalf("frames = %d", len(start))
	}
	if start[0].Radius != 0 || math.Abs(start[0].Opacity-0.35) > 1e-9 {
		t.Errorf("start frame = %+v", start[0])
	}

	late := r.Sample(epoch.Add(1100 * time.Millisecond))
	if late[0].Radius <= 0 || late[0].Radius > 60*12 {
		t.Errorf("late radius = %v", late[0].Radius)
	}
	if late[0].Opacity >= 0.35 || late[0].Opacity < 0 {
		t.Errorf("late opacity = %v", late[0].Opacity)
	}
}

func TestRippleOnExpireHook(t *testing.T) {
	r, sched, _ := newRipples(t)
	var expired []uint64
	r.OnExpire(func(rp Ripple) { expired = append(expired, rp.ID) })

	r.Spawn(0, 0, 0, 0)
	r.Spawn(0, 0, 0, 0)
	sched.Advance(epoch.Add(2 * time.Second))

	if len(expired) != 2 || expired[0] != 0 || expired[1] != 1 {
		t.Errorf("expired = %v", expired)
	}
}

func TestRippleCloseCancelsRemovals(t *testing.T) {
	r, sched, _ := newRipples(t)
	expired := 0
	r.OnExpire(func(Ripple) { expired++ })
	for i := 0; i < 3; i++ {
		r.Spawn(0, 0, 0, 0)
	}

	r.Close()
	if sched.Len() != 0 {
		t.Errorf("pending removals after Close = %d", sched.Len())
	}
	sched.Advance(epoch.Add(time.Minute))
	if expired != 0 || r.Len() != 0 {
		t.Errorf("expired=%d len=%d after Close", expired, r.Len())
	}
}

func TestTrackRejectsSingleKey(t *testing.T) {
	if _, err := newTrack([]float64{1}, nil); err == nil {
		t.Error("expected error for single keyframe")
	}
}
