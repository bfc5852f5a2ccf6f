// Package telemetry records what happens during a session: an event log,
// an end-of-session summary and frame timing.
package telemetry

import (
	"time"

	"github.com/pthm-cable/dusk/tracker"
)

// EventKind identifies telemetry events.
type EventKind uint8

const (
	EventTick EventKind = iota
	EventClick
	EventRippleExpired
	EventLongPressReveal
	EventLongPressDismiss
	EventMotion
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventClick:
		return "click"
	case EventRippleExpired:
		return "ripple_expired"
	case EventLongPressReveal:
		return "longpress_reveal"
	case EventLongPressDismiss:
		return "longpress_dismiss"
	case EventMotion:
		return "motion"
	}
	return "unknown"
}

// MarshalCSV writes the kind by name.
func (k EventKind) MarshalCSV() (string, error) {
	return k.String(), nil
}

// Event is one row of events.csv.
type Event struct {
	OffsetMs   int64     `csv:"offset_ms"` // Since session start
	Kind       EventKind `csv:"kind"`
	Elapsed    int       `csv:"elapsed"`
	ClickLevel int       `csv:"click_level"`
	Reduced    bool      `csv:"reduced_motion"`
	Color      string    `csv:"color"` // Background hex after the event
}

// Offset returns the event time relative to session start.
func (e Event) Offset() time.Duration {
	return time.Duration(e.OffsetMs) * time.Millisecond
}

// NewEvent captures a tracker snapshot as an event.
func NewEvent(kind EventKind, offset time.Duration, s tracker.State, colorHex string) Event {
	return Event{
		OffsetMs:   offset.Milliseconds(),
		Kind:       kind,
		Elapsed:    s.ElapsedSeconds,
		ClickLevel: s.ClickLevel,
		Reduced:    s.ReducedMotion,
		Color:      colorHex,
	}
}
