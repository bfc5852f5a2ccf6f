// Package effects manages the ephemeral visual layers composited over the
// background: looping ambient light particles and expanding click ripples.
// Both are stored as entities in an ark ECS world and scheduled on the
// cooperative scheduler; nothing here feeds back into the tracker except
// ripple spawns forwarding their click.
package effects

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/ease"
	"github.com/pthm-cable/dusk/schedule"
)

// LightPhase is the activation state of the ambient light system.
type LightPhase uint8

const (
	LightsDormant LightPhase = iota // Nothing scheduled, pool empty
	LightsPending                   // Activation delay running
	LightsActive                    // Pool generated and looping
)

func (p LightPhase) String() string {
	switch p {
	case LightsDormant:
		return "dormant"
	case LightsPending:
		return "pending"
	case LightsActive:
		return "active"
	}
	return "unknown"
}

// LightParticle is one glowing point in the ambient pool.
type LightParticle struct {
	ID            int
	XPercent      float64 // [0, 100] of surface width
	YPercent      float64 // [0, 100] of surface height
	AppearDelay   time.Duration
	CycleDuration time.Duration
	SizePx        float64
	PeakOpacity   float64

	driftX  track
	driftY  track
	scale   track
	opacity track
}

// Glow is a particle sampled for one frame, in surface pixels.
type Glow struct {
	ID      int
	X, Y    float64
	Size    float64
	Opacity float64
}

// Lights is the ambient light particle system.
type Lights struct {
	world  *ecs.World
	mapper *ecs.Map1[LightParticle]
	filter *ecs.Filter1[LightParticle]

	sched *schedule.Scheduler
	rng   *rand.Rand
	cfg   config.LightsConfig

	minDelay, maxDelay time.Duration
	stagger            time.Duration
	minCycle, maxCycle time.Duration

	phase       LightPhase
	reduced     bool
	closed      bool
	activation  schedule.Handle
	activatedAt time.Time
	entities    []ecs.Entity
}

// NewLights creates a dormant light system. Call Start to arm it.
func NewLights(world *ecs.World, sched *schedule.Scheduler, rng *rand.Rand, cfg *config.Config) *Lights {
	return &Lights{
		world:    world,
		mapper:   ecs.NewMap1[LightParticle](world),
		filter:   ecs.NewFilter1[LightParticle](world),
		sched:    sched,
		rng:      rng,
		cfg:      cfg.Lights,
		minDelay: cfg.Derived.LightsMinDelay,
		maxDelay: cfg.Derived.LightsMaxDelay,
		stagger:  cfg.Derived.LightsStagger,
		minCycle: cfg.Derived.LightsMinCycle,
		maxCycle: cfg.Derived.LightsMaxCycle,
	}
}

// Phase returns the current activation phase.
func (l *Lights) Phase() LightPhase {
	return l.phase
}

// Len returns the number of particles in the pool.
func (l *Lights) Len() int {
	return len(l.entities)
}

// Start arms the activation delay unless reduced motion is on or the system
// is already pending or active.
func (l *Lights) Start() {
	if l.closed || l.reduced || l.phase != LightsDormant {
		return
	}
	delay := l.minDelay + l.randDuration(l.maxDelay-l.minDelay)
	l.activation = l.sched.After(delay, l.activate)
	l.phase = LightsPending
	slog.Debug("ambient lights pending", "delay", delay)
}

// SetReducedMotion gates the system live. Turning reduced motion on cancels a
// pending activation and drops the pool; turning it off re-arms activation.
func (l *Lights) SetReducedMotion(on bool) {
	if l.reduced == on {
		return
	}
	l.reduced = on
	if on {
		l.stop()
		return
	}
	l.Start()
}

// Close cancels the activation task and empties the pool.
func (l *Lights) Close() {
	l.stop()
	l.closed = true
}

func (l *Lights) stop() {
	l.activation.Cancel()
	for _, e := range l.entities {
		if l.world.Alive(e) {
			l.world.RemoveEntity(e)
		}
	}
	l.entities = l.entities[:0]
	l.phase = LightsDormant
}

// activate generates the pool. Runs from the scheduler.
func (l *Lights) activate(now time.Time) {
	if l.closed || l.reduced {
		return
	}
	l.activatedAt = now
	l.phase = LightsActive

	for i := 0; i < l.cfg.Count; i++ {
		p := l.generate(i)
		l.entities = append(l.entities, l.mapper.NewEntity(&p))
	}
	slog.Debug("ambient lights active", "count", len(l.entities))
}

// generate builds one particle with independently randomized parameters.
func (l *Lights) generate(id int) LightParticle {
	p := LightParticle{
		ID:            id,
		XPercent:      l.rng.Float64() * 100,
		YPercent:      l.rng.Float64() * 100,
		AppearDelay:   l.randDuration(l.stagger),
		CycleDuration: l.minCycle + l.randDuration(l.maxCycle-l.minCycle),
		SizePx:        l.cfg.MinSize + l.rng.Float64()*(l.cfg.MaxSize-l.cfg.MinSize),
		PeakOpacity:   l.cfg.MinOpacity + l.rng.Float64()*(l.cfg.MaxOpacity-l.cfg.MinOpacity),
	}

	p.driftX = mustTrack(l.driftPath(), ease.InOut)
	p.driftY = mustTrack(l.driftPath(), ease.InOut)
	p.scale = mustTrack(l.cfg.ScaleKeys, ease.InOut)
	p.opacity = mustTrack([]float64{0, p.PeakOpacity, 0}, ease.InOut)
	return p
}

// driftPath returns a closed path starting and ending at the origin, with
// each interior point offset within +/- half the configured drift.
func (l *Lights) driftPath() []float64 {
	path := make([]float64, 0, len(l.cfg.Drift)+2)
	path = append(path, 0)
	for _, d := range l.cfg.Drift {
		path = append(path, (l.rng.Float64()-0.5)*d)
	}
	return append(path, 0)
}

func (l *Lights) randDuration(span time.Duration) time.Duration {
	if span <= 0 {
		return 0
	}
	return time.Duration(l.rng.Int63n(int64(span) + 1))
}

// Sample returns the visible particles at now on a width x height surface,
// ordered by id. Returns nil whenever reduced motion is on.
func (l *Lights) Sample(now time.Time, width, height float64) []Glow {
	if l.reduced || l.phase != LightsActive {
		return nil
	}

	glows := make([]Glow, 0, len(l.entities))
	query := l.filter.Query()
	for query.Next() {
		p := query.Get()

		elapsed := now.Sub(l.activatedAt) - p.AppearDelay
		if elapsed < 0 || p.CycleDuration <= 0 {
			continue
		}
		phase := float64(elapsed%p.CycleDuration) / float64(p.CycleDuration)

		glows = append(glows, Glow{
			ID:      p.ID,
			X:       p.XPercent/100*width + p.driftX.at(phase),
			Y:       p.YPercent/100*height + p.driftY.at(phase),
			Size:    p.SizePx * p.scale.at(phase),
			Opacity: p.opacity.at(phase),
		})
	}

	sort.Slice(glows, func(i, j int) bool { return glows[i].ID < glows[j].ID })
	return glows
}

// Particles returns a copy of the pool, ordered by id.
func (l *Lights) Particles() []LightParticle {
	out := make([]LightParticle, 0, len(l.entities))
	for _, e := range l.entities {
		if l.world.Alive(e) {
			out = append(out, *l.mapper.Get(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
