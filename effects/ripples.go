package effects

import (
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/ease"
	"github.com/pthm-cable/dusk/schedule"
)

// Clicker receives the click a ripple was spawned for.
type Clicker interface {
	RegisterClick()
}

// Ripple is one expanding ring anchored at a click.
type Ripple struct {
	ID        uint64
	OriginX   float64 // Relative to the surface origin
	OriginY   float64
	CreatedAt time.Time

	removal schedule.Handle
}

// RingFrame is a ripple sampled for one frame.
type RingFrame struct {
	ID      uint64
	X, Y    float64
	Radius  float64
	Opacity float64
}

// Ripples spawns one ring per qualifying click and removes it after its
// lifetime. There is no cap on concurrent ripples.
type Ripples struct {
	world  *ecs.World
	mapper *ecs.Map1[Ripple]
	filter *ecs.Filter1[Ripple]

	sched   *schedule.Scheduler
	clicker Clicker

	lifetime  time.Duration
	animation time.Duration
	ringSize  float64
	maxScale  float64
	curve     ease.Func
	opacity   track

	nextID   uint64
	entities map[uint64]ecs.Entity
	onExpire func(Ripple)
}

// NewRipples creates a ripple system forwarding clicks to clicker.
func NewRipples(world *ecs.World, sched *schedule.Scheduler, clicker Clicker, cfg *config.Config) *Ripples {
	e := cfg.Ripple.Ease
	curve := ease.CubicBezier(e[0], e[1], e[2], e[3])
	return &Ripples{
		world:     world,
		mapper:    ecs.NewMap1[Ripple](world),
		filter:    ecs.NewFilter1[Ripple](world),
		sched:     sched,
		clicker:   clicker,
		lifetime:  cfg.Derived.RippleLifetime,
		animation: cfg.Derived.RippleAnimation,
		ringSize:  cfg.Ripple.RingSize,
		maxScale:  cfg.Ripple.MaxScale,
		curve:     curve,
		opacity:   mustTrack(cfg.Ripple.OpacityKeys, nil),
		entities:  make(map[uint64]ecs.Entity),
	}
}

// OnExpire registers a hook called when a ripple is removed by its timer.
func (r *Ripples) OnExpire(fn func(Ripple)) {
	r.onExpire = fn
}

// Spawn adds a ripple for a click at (x, y) on a surface whose origin is at
// (surfaceX, surfaceY), forwards the click, and schedules the ripple's removal.
func (r *Ripples) Spawn(x, y, surfaceX, surfaceY float64) Ripple {
	rp := Ripple{
		ID:        r.nextID,
		OriginX:   x - surfaceX,
		OriginY:   y - surfaceY,
		CreatedAt: r.sched.Now(),
	}
	r.nextID++

	id := rp.ID
	rp.removal = r.sched.After(r.lifetime, func(time.Time) { r.expire(id) })

	r.entities[id] = r.mapper.NewEntity(&rp)
	if r.clicker != nil {
		r.clicker.RegisterClick()
	}
	return rp
}

// expire removes a ripple by id. A no-op if it is already gone.
func (r *Ripples) expire(id uint64) {
	e, ok := r.entities[id]
	if !ok {
		return
	}
	delete(r.entities, id)
	if !r.world.Alive(e) {
		return
	}
	rp := *r.mapper.Get(e)
	r.world.RemoveEntity(e)
	if r.onExpire != nil {
		r.onExpire(rp)
	}
}

// Len returns the number of ripples in the active set.
func (r *Ripples) Len() int {
	return len(r.entities)
}

// Active returns ripples younger than their lifetime at now, in id order.
func (r *Ripples) Active(now time.Time) []Ripple {
	out := make([]Ripple, 0, len(r.entities))
	query := r.filter.Query()
	for query.Next() {
		rp := query.Get()
		if now.Sub(rp.CreatedAt) < r.lifetime {
			out = append(out, *rp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Sample returns the ring geometry of every active ripple at now, in z-order.
// The ring scales from 0 to maxScale over the animation duration while its
// opacity steps down through the configured keys.
func (r *Ripples) Sample(now time.Time) []RingFrame {
	active := r.Active(now)
	frames := make([]RingFrame, len(active))
	for i, rp := range active {
		progress := float64(now.Sub(rp.CreatedAt)) / float64(r.animation)
		eased := r.curve(progress)
		frames[i] = RingFrame{
			ID:      rp.ID,
			X:       rp.OriginX,
			Y:       rp.OriginY,
			Radius:  r.ringSize / 2 * r.maxScale * eased,
			Opacity: r.opacity.at(eased),
		}
	}
	return frames
}

// Close cancels every pending removal and clears the active set.
func (r *Ripples) Close() {
	for id, e := range r.entities {
		if r.world.Alive(e) {
			r.mapper.Get(e).removal.Cancel()
			r.world.RemoveEntity(e)
		}
		delete(r.entities, id)
	}
}
