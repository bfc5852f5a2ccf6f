// Package tracker accumulates dwell time and background clicks into
// immutable interaction snapshots.
package tracker

import "fmt"

// State is an immutable snapshot of the interaction signals.
type State struct {
	ElapsedSeconds int // [0, Cap], stops at Cap
	Cap            int
	ClickLevel     int // [0, MaxLevel], cyclic
	MaxLevel       int
	ReducedMotion  bool
}

// TimeProgress returns ElapsedSeconds/Cap in [0, 1].
func (s State) TimeProgress() float64 {
	if s.Cap <= 0 {
		return 0
	}
	p := float64(s.ElapsedSeconds) / float64(s.Cap)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// ClickProgress returns ClickLevel/MaxLevel in [0, 1] (linear).
func (s State) ClickProgress() float64 {
	if s.MaxLevel <= 0 {
		return 0
	}
	return float64(s.ClickLevel) / float64(s.MaxLevel)
}

// Tracker owns the interaction state. Only Tick, RegisterClick and
// SetReducedMotion mutate it; each mutation publishes the new snapshot to
// every subscriber before returning.
type Tracker struct {
	state State

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(State)
}

// New creates a tracker with the given dwell cap (seconds) and max click level.
func New(capSeconds, maxLevel int) (*Tracker, error) {
	if capSeconds <= 0 {
		return nil, fmt.Errorf("tracker: cap must be positive, got %d", capSeconds)
	}
	if maxLevel <= 0 {
		return nil, fmt.Errorf("tracker: max level must be positive, got %d", maxLevel)
	}
	return &Tracker{state: State{Cap: capSeconds, MaxLevel: maxLevel}}, nil
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	return t.state
}

// Tick advances dwell time by one second, clamped to the cap.
// Once capped, further ticks publish nothing.
func (t *Tracker) Tick() {
	if t.state.ElapsedSeconds >= t.state.Cap {
		return
	}
	next := t.state
	next.ElapsedSeconds++
	t.publish(next)
}

// RegisterClick advances the click level modulo MaxLevel+1.
func (t *Tracker) RegisterClick() {
	next := t.state
	next.ClickLevel = (next.ClickLevel + 1) % (next.MaxLevel + 1)
	t.publish(next)
}

// SetReducedMotion records the reduced-motion preference.
func (t *Tracker) SetReducedMotion(on bool) {
	if t.state.ReducedMotion == on {
		return
	}
	next := t.state
	next.ReducedMotion = on
	t.publish(next)
}

// Subscribe registers fn to receive every new snapshot. The returned function
// removes the subscription. fn is not called with the current state.
func (t *Tracker) Subscribe(fn func(State)) (unsubscribe func()) {
	id := t.nextID
	t.nextID++
	t.subs = append(t.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// publish commits the snapshot, then notifies subscribers in order.
// Subscribers added during publish are not called for this snapshot.
func (t *Tracker) publish(next State) {
	t.state = next
	subs := t.subs
	for _, s := range subs {
		s.fn(next)
	}
}
