// Package schedule implements a cooperative timer queue driven by the frame loop.
//
// Nothing here runs on its own goroutine: the owner calls Advance once per
// frame and every due task fires synchronously, in due-time order, on the
// caller's goroutine. Every scheduled task returns a Handle whose Cancel
// guarantees the task will not fire afterwards.
package schedule

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback. now is the task's due time, not the wall time
// of the Advance call that fired it.
type Task func(now time.Time)

type task struct {
	due      time.Time
	every    time.Duration // 0 = one-shot
	seq      uint64        // tie-breaker, preserves scheduling order
	fn       Task
	canceled bool
	done     bool
	index    int
}

// Handle is the cancellation token for a scheduled task.
// The zero Handle is valid and refers to nothing.
type Handle struct {
	t *task
	s *Scheduler
}

// Cancel stops the task from firing. Returns true if the task was still pending.
func (h Handle) Cancel() bool {
	if h.t == nil || h.t.canceled || h.t.done {
		return false
	}
	h.t.canceled = true
	if h.t.index >= 0 {
		heap.Remove(&h.s.queue, h.t.index)
	}
	return true
}

// Pending reports whether the task will still fire.
func (h Handle) Pending() bool {
	return h.t != nil && !h.t.canceled && !h.t.done
}

// Scheduler is a single-threaded timer queue.
type Scheduler struct {
	now   time.Time
	seq   uint64
	queue taskQueue
}

// New creates a scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the scheduler's current time.
// Inside a firing task this is the task's due time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to fire once, d after the scheduler's current time.
func (s *Scheduler) After(d time.Duration, fn Task) Handle {
	return s.push(d, 0, fn)
}

// Every schedules fn to fire every d, first at now+d. d must be positive.
func (s *Scheduler) Every(d time.Duration, fn Task) Handle {
	if d <= 0 {
		panic("schedule: Every requires a positive interval")
	}
	return s.push(d, d, fn)
}

func (s *Scheduler) push(d, every time.Duration, fn Task) Handle {
	if d < 0 {
		d = 0
	}
	t := &task{
		due:   s.now.Add(d),
		every: every,
		seq:   s.seq,
		fn:    fn,
		index: -1,
	}
	s.seq++
	heap.Push(&s.queue, t)
	return Handle{t: t, s: s}
}

// Advance moves the clock to now and fires every task due at or before it.
// Tasks scheduled by a firing task are eligible in the same call.
// Returns the number of tasks fired. A now earlier than the current time is ignored.
func (s *Scheduler) Advance(now time.Time) int {
	if now.Before(s.now) {
		return 0
	}

	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due.After(now) {
			break
		}
		heap.Pop(&s.queue)

		s.now = next.due
		if next.every > 0 {
			next.due = next.due.Add(next.every)
			next.seq = s.seq
			s.seq++
			heap.Push(&s.queue, next)
		} else {
			next.done = true
		}

		next.fn(s.now)
		fired++
	}

	s.now = now
	return fired
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.canceled = true
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// taskQueue orders tasks by due time, then scheduling order.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
