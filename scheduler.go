package protoplay

import "time"

// Timer is a pending callback on a Scheduler.
type Timer struct {
	due   time.Duration
	seq   uint64
	fn    func()
	sched *Scheduler
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.sched == nil {
		return false
	}
	if _, ok := t.sched.timers[t]; !ok {
		return false
	}
	delete(t.sched.timers, t)
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	if t == nil || t.sched == nil {
		return false
	}
	_, ok := t.sched.timers[t]
	return ok
}

// Scheduler is a single-threaded virtual clock. Time only moves when
// Advance is called, so animations can be driven by a game loop or stepped
// exactly in tests.
//
// Every pending timer is retained in one set; Clear cancels all of them.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers map[*Timer]struct{}
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[*Timer]struct{})}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// AfterFunc schedules fn to run once d has elapsed.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.now + d, seq: s.seq, fn: fn, sched: s}
	s.timers[t] = struct{}{}
	return t
}

// NextFrame schedules fn at the next frame boundary: after the current
// callback (or the caller's synchronous code) has finished, and before any
// timer that is due later. Style writes made in fn are therefore observed
// as a separate step from writes made before the call.
func (s *Scheduler) NextFrame(fn func()) *Timer {
	return s.AfterFunc(0, fn)
}

// Advance moves time forward by dt, running every timer that falls due in
// order of due time, then scheduling order. Timers scheduled by callbacks
// run in the same Advance if they fall due within it.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	end := s.now + dt
	for {
		t := s.earliest()
		if t == nil || t.due > end {
			break
		}
		delete(s.timers, t)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	s.now = end
}

// Pending returns the number of timers that have not fired.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear cancels every pending timer.
func (s *Scheduler) Clear() {
	clear(s.timers)
}

func (s *Scheduler) earliest() *Timer {
	var best *Timer
	for t := range s.timers {
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
