// Package clock provides the time source used by the scheduler and effects.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real is the system monotonic clock.
type Real struct{}

// Now returns the current time with monotonic clock reading.
func (Real) Now() time.Time {
	return time.Now()
}

// Mock is a manually advanced clock for tests and headless runs.
// Not safe for concurrent use; the backdrop runs on a single goroutine.
type Mock struct {
	now time.Time
}

// NewMock creates a mock clock starting at the given time.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the current mocked time.
func (m *Mock) Now() time.Time {
	return m.now
}

// Set moves the clock to t.
func (m *Mock) Set(t time.Time) {
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
