// Package longpress detects a sustained press and reveals a transient message.
package longpress

import (
	"time"

	"github.com/pthm-cable/dusk/schedule"
)

// Phase is the detector state.
type Phase uint8

const (
	Idle     Phase = iota
	Pressing       // Hold timer running
	Revealed       // Message visible until the dismiss timer fires
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pressing:
		return "pressing"
	case Revealed:
		return "revealed"
	}
	return "unknown"
}

// Detector is a timer-driven state machine:
// Idle -> Pressing on press, Pressing -> Idle on early release,
// Pressing -> Revealed after the hold duration, Revealed -> Idle after the
// reveal duration regardless of input.
type Detector struct {
	sched  *schedule.Scheduler
	hold   time.Duration
	reveal time.Duration

	phase     Phase
	startedAt time.Time
	expiresAt time.Time
	timer     schedule.Handle
	closed    bool

	onReveal  func(time.Time)
	onDismiss func(time.Time)
}

// New creates an idle detector.
func New(sched *schedule.Scheduler, hold, reveal time.Duration) *Detector {
	return &Detector{sched: sched, hold: hold, reveal: reveal}
}

// OnReveal registers a hook called when the message is revealed.
func (d *Detector) OnReveal(fn func(time.Time)) { d.onReveal = fn }

// OnDismiss registers a hook called when the message is dismissed.
func (d *Detector) OnDismiss(fn func(time.Time)) { d.onDismiss = fn }

// Phase returns the current state.
func (d *Detector) Phase() Phase { return d.phase }

// Visible reports whether the message is showing.
func (d *Detector) Visible() bool { return d.phase == Revealed }

// StartedAt returns when the current press began. Zero unless pressing.
func (d *Detector) StartedAt() time.Time {
	if d.phase != Pressing {
		return time.Time{}
	}
	return d.startedAt
}

// ExpiresAt returns when the revealed message is dismissed. Zero unless revealed.
func (d *Detector) ExpiresAt() time.Time {
	if d.phase != Revealed {
		return time.Time{}
	}
	return d.expiresAt
}

// Press starts the hold timer. Ignored unless idle, so a press during a
// reveal does not interrupt the dismiss countdown.
func (d *Detector) Press() {
	if d.closed || d.phase != Idle {
		return
	}
	d.phase = Pressing
	d.startedAt = d.sched.Now()
	d.timer = d.sched.After(d.hold, d.fireReveal)
}

// Release cancels a press that has not yet been held long enough.
func (d *Detector) Release() {
	if d.phase != Pressing {
		return
	}
	d.timer.Cancel()
	d.phase = Idle
}

// Close cancels any pending timer and returns to idle.
func (d *Detector) Close() {
	d.timer.Cancel()
	d.phase = Idle
	d.closed = true
}

func (d *Detector) fireReveal(now time.Time) {
	if d.closed || d.phase != Pressing {
		return
	}
	d.phase = Revealed
	d.expiresAt = now.Add(d.reveal)
	d.timer = d.sched.After(d.reveal, d.fireDismiss)
	if d.onReveal != nil {
		d.onReveal(now)
	}
}

func (d *Detector) fireDismiss(now time.Time) {
	if d.closed || d.phase != Revealed {
		return
	}
	d.phase = Idle
	if d.onDismiss != nil {
		d.onDismiss(now)
	}
}
