// Package engine wires the interaction tracker, the scheduler and the visual
// effects into a single frame-driven backdrop.
//
// Everything runs on the caller's goroutine. The window (or headless) loop
// calls Advance once per frame, forwards pointer input, and asks for a
// Composition to draw.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dusk/clock"
	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/effects"
	"github.com/pthm-cable/dusk/longpress"
	"github.com/pthm-cable/dusk/motion"
	"github.com/pthm-cable/dusk/palette"
	"github.com/pthm-cable/dusk/schedule"
	"github.com/pthm-cable/dusk/telemetry"
	"github.com/pthm-cable/dusk/texture"
	"github.com/pthm-cable/dusk/tracker"
)

// Derived holds every value computed from one tracker snapshot.
// It is replaced as a whole so readers never see a partial update.
type Derived struct {
	State          tracker.State
	Color          palette.RGB // Target background color
	Horizon        palette.RGB
	HorizonOpacity float64
	Paper          texture.PaperTexture
	Grain          texture.GrainTexture
}

// Engine is the running backdrop.
type Engine struct {
	cfg   *config.Config
	clock clock.Clock
	sched *schedule.Scheduler

	tracker *tracker.Tracker
	motion  *motion.Preference
	palette palette.Palette
	bg      *palette.Transition
	grain   *texture.Cache

	world   *ecs.World
	lights  *effects.Lights
	ripples *effects.Ripples
	press   *longpress.Detector

	recorder *telemetry.Recorder
	visitors int

	derived Derived
	start   time.Time
	ticker  schedule.Handle
	unsubs  []func()
	started bool
	closed  bool
}

// New creates an engine. Nothing is scheduled until Start.
func New(cfg *config.Config, clk clock.Clock, rng *rand.Rand) (*Engine, error) {
	tr, err := tracker.New(cfg.Tracker.CapSeconds, cfg.Tracker.MaxLevel)
	if err != nil {
		return nil, fmt.Errorf("creating tracker: %w", err)
	}

	now := clk.Now()
	sched := schedule.New(now)
	world := ecs.NewWorld()
	pal := palette.New(cfg)

	e := &Engine{
		cfg:      cfg,
		clock:    clk,
		sched:    sched,
		tracker:  tr,
		motion:   motion.NewPreference(false),
		palette:  pal,
		grain:    texture.NewCache(cfg.Grain.RasterSize),
		world:    world,
		lights:   effects.NewLights(world, sched, rng, cfg),
		ripples:  effects.NewRipples(world, sched, tr, cfg),
		press:    longpress.New(sched, cfg.Derived.LongPressHold, cfg.Derived.LongPressReveal),
		recorder: telemetry.NewRecorder(nil, false, false),
		visitors: 1,
		start:    now,
	}
	e.derived = e.derive(tr.Snapshot())
	e.bg = palette.NewTransition(e.derived.Color, cfg.Derived.ColorTransition)

	e.unsubs = append(e.unsubs,
		tr.Subscribe(e.onState),
		e.motion.Subscribe(e.onMotion),
	)
	e.ripples.OnExpire(func(effects.Ripple) { e.record(telemetry.EventRippleExpired) })
	e.press.OnReveal(func(now time.Time) {
		slog.Info("message revealed", "until", now.Add(cfg.Derived.LongPressReveal).Sub(e.start))
		e.record(telemetry.EventLongPressReveal)
	})
	e.press.OnDismiss(func(time.Time) { e.record(telemetry.EventLongPressDismiss) })

	return e, nil
}

// SetRecorder replaces the telemetry recorder. Call before Start.
func (e *Engine) SetRecorder(r *telemetry.Recorder) {
	if r != nil {
		e.recorder = r
	}
}

// SetVisitors sets the visitor count shown in the footer.
func (e *Engine) SetVisitors(n int) {
	e.visitors = max(n, 1)
}

// Motion returns the live reduced-motion preference.
func (e *Engine) Motion() *motion.Preference {
	return e.motion
}

// State returns the current interaction snapshot.
func (e *Engine) State() tracker.State {
	return e.tracker.Snapshot()
}

// Derived returns the values computed from the latest snapshot.
func (e *Engine) Derived() Derived {
	return e.derived
}

// Lights exposes the ambient light system.
func (e *Engine) Lights() *effects.Lights {
	return e.lights
}

// Ripples exposes the ripple system.
func (e *Engine) Ripples() *effects.Ripples {
	return e.ripples
}

// LongPress exposes the long-press detector.
func (e *Engine) LongPress() *longpress.Detector {
	return e.press
}

// Pending returns the number of scheduled tasks.
func (e *Engine) Pending() int {
	return e.sched.Len()
}

// Start begins the dwell ticker and arms the ambient lights.
func (e *Engine) Start() {
	if e.started || e.closed {
		return
	}
	e.started = true
	e.ticker = e.sched.Every(e.cfg.Derived.Tick, e.onTick)
	e.lights.Start()
	slog.Info("engine started",
		"cap", e.cfg.Tracker.CapSeconds,
		"max_level", e.cfg.Tracker.MaxLevel,
		"reduced_motion", e.motion.Reduced(),
	)
}

// Advance runs every task due at or before now. Returns the number fired.
func (e *Engine) Advance(now time.Time) int {
	if e.closed {
		return 0
	}
	return e.sched.Advance(now)
}

// Click handles a background click at surface coordinates (x, y): it spawns a
// ripple, which in turn advances the click level.
func (e *Engine) Click(x, y float64) {
	if e.closed {
		return
	}
	e.sync()
	e.ripples.Spawn(x, y, 0, 0)
	e.record(telemetry.EventClick)
}

// Press starts a long press.
func (e *Engine) Press() {
	if e.closed {
		return
	}
	e.sync()
	e.press.Press()
}

// Release ends a long press.
func (e *Engine) Release() {
	if e.closed {
		return
	}
	e.sync()
	e.press.Release()
}

// Close cancels every pending task, empties the effect pools and returns
// the session summary. Safe to call more than once.
func (e *Engine) Close() telemetry.Summary {
	if e.closed {
		return telemetry.Summary{}
	}
	e.sync()
	end := e.sched.Now()

	e.ticker.Cancel()
	e.lights.Close()
	e.ripples.Close()
	e.press.Close()
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.sched.CancelAll()
	e.closed = true

	return e.recorder.Finish(end.Sub(e.start))
}

// sync brings the scheduler up to the clock so input is stamped with the
// current time and any overdue timers fire first.
func (e *Engine) sync() {
	e.sched.Advance(e.clock.Now())
}

func (e *Engine) onTick(time.Time) {
	before := e.tracker.Snapshot().ElapsedSeconds
	e.tracker.Tick()
	if e.tracker.Snapshot().ElapsedSeconds == before {
		// Capped: nothing more to count.
		e.ticker.Cancel()
		slog.Debug("dwell cap reached", "cap", before)
		return
	}
	e.record(telemetry.EventTick)
}

func (e *Engine) onState(s tracker.State) {
	e.derived = e.derive(s)
	e.bg.Retarget(e.derived.Color, e.sched.Now())
}

func (e *Engine) onMotion(reduced bool) {
	e.tracker.SetReducedMotion(reduced)
	e.lights.SetReducedMotion(reduced)
	if reduced {
		e.bg.SetDuration(0)
	} else {
		e.bg.SetDuration(e.cfg.Derived.ColorTransition)
	}
	slog.Info("reduced motion changed", "reduced", reduced)
	e.record(telemetry.EventMotion)
}

func (e *Engine) derive(s tracker.State) Derived {
	horizon, opacity := palette.Horizon(s, e.palette)
	return Derived{
		State:          s,
		Color:          palette.Background(s, e.palette),
		Horizon:        horizon,
		HorizonOpacity: opacity,
		Paper:          texture.Paper(s, e.cfg.Paper),
		Grain:          texture.Grain(s, e.cfg.Grain),
	}
}

func (e *Engine) record(kind telemetry.EventKind) {
	d := e.derived
	e.recorder.Record(telemetry.NewEvent(kind, e.sched.Now().Sub(e.start), d.State, d.Color.Hex()))
}
