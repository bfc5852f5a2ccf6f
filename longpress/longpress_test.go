package longpress

import (
	"testing"
	"time"

	"github.com/pthm-cable/dusk/schedule"
)

var epoch = time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)

func newDetector() (*Detector, *schedule.Scheduler) {
	sched := schedule.New(epoch)
	return New(sched, time.Second, 5*time.Second), sched
}

func TestEarlyReleaseNeverReveals(t *testing.T) {
	d, sched := newDetector()
	revealed := false
	d.OnReveal(func(time.Time) { revealed = true })

	d.Press()
	sched.Advance(epoch.Add(900 * time.Millisecond))
	d.Release()
	sched.Advance(epoch.Add(time.Minute))

	if revealed || d.Phase() != Idle {
		t.Errorf("revealed=%v phase=%v after early release", revealed, d.Phase())
	}
	if sched.Len() != 0 {
		t.Errorf("timer leaked: %d pending", sched.Len())
	}
}

func TestHoldRevealsThenDismissesAfterFiveSeconds(t *testing.T) {
	d, sched := newDetector()
	var revealAt, dismissAt time.Time
	d.OnReveal(func(now time.Time) { revealAt = now })
	d.OnDismiss(func(now time.Time) { dismissAt = now })

	d.Press()
	if d.Phase() != Pressing || !d.StartedAt().Equal(epoch) {
		t.Fatalf("phase=%v startedAt=%v", d.Phase(), d.StartedAt())
	}

	sched.Advance(epoch.Add(time.Second))
	if !d.Visible() {
		t.Fatal("expected reveal at 1000ms")
	}
	if !revealAt.Equal(epoch.Add(time.Second)) {
		t.Errorf("revealed at %v", revealAt)
	}
	if !d.ExpiresAt().Equal(epoch.Add(6 * time.Second)) {
		t.Errorf("expires at %v, want +6s", d.ExpiresAt())
	}

	// Releasing after the reveal has no effect
	d.Release()
	sched.Advance(epoch.Add(5999 * time.Millisecond))
	if !d.Visible() {
		t.Fatal("dismissed early")
	}

	sched.Advance(epoch.Add(6 * time.Second))
	if d.Phase() != Idle {
		t.Errorf("phase = %v, want idle", d.Phase())
	}
	if got := dismissAt.Sub(revealAt); got != 5*time.Second {
		t.Errorf("reveal lasted %v, want 5s", got)
	}
}

func TestPressDuringRevealDoesNotExtend(t *testing.T) {
	d, sched := newDetector()
	d.Press()
	sched.Advance(epoch.Add(time.Second))

	sched.Advance(epoch.Add(3 * time.Second))
	d.Press()
	if d.Phase() != Revealed {
		t.Fatalf("press during reveal changed phase to %v", d.Phase())
	}

	sched.Advance(epoch.Add(6 * time.Second))
	if d.Phase() != Idle {
		t.Errorf("reveal extended by press: phase=%v", d.Phase())
	}

	// A fresh press after dismissal works normally
	d.Press()
	sched.Advance(epoch.Add(7 * time.Second))
	if !d.Visible() {
		t.Error("second long press did not reveal")
	}
}

func TestDoublePressKeepsSingleTimer(t *testing.T) {
	d, sched := newDetector()
	d.Press()
	sched.Advance(epoch.Add(500 * time.Millisecond))
	d.Press()

	if sched.Len() != 1 {
		t.Errorf("pending timers = %d, want 1", sched.Len())
	}
	sched.Advance(epoch.Add(time.Second))
	if !d.Visible() {
		t.Error("second press restarted the hold timer")
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	d, sched := newDetector()
	d.Press()
	sched.Advance(epoch.Add(time.Second))
	d.Close()

	if sched.Len() != 0 {
		t.Errorf("pending timers after Close = %d", sched.Len())
	}
	d.Press()
	if d.Phase() != Idle {
		t.Error("closed detector accepted a press")
	}
}
