package protoplay

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	s.AfterFunc(time.Second, func() { got = append(got, "a") })
	s.AfterFunc(2*time.Second, func() { got = append(got, "c") })

	s.Advance(1500 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after 1.5s: %v", got)
	}
	s.Advance(time.Second)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("after 2.5s: %v", got)
	}
	if s.Now() != 2500*time.Millisecond {
		t.Errorf("Now = %v, want 2.5s", s.Now())
	}
}

func TestSchedulerNextFrameRunsAfterCurrentCallback(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.NextFrame(func() {
		got = append(got, "frame1")
		s.NextFrame(func() { got = append(got, "frame2") })
		got = append(got, "frame1-end")
	})
	s.AfterFunc(time.Millisecond, func() { got = append(got, "later") })
	s.Advance(0)
	want := []string{"frame1", "frame1-end", "frame2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
}

func TestSchedulerCallbackTimersFallingDue(t *testing.T) {
	s := NewScheduler()
	var firedAt time.Duration
	s.AfterFunc(time.Second, func() {
		s.AfterFunc(500*time.Millisecond, func() { firedAt = s.Now() })
	})
	s.Advance(2 * time.Second)
	if firedAt != 1500*time.Millisecond {
		t.Errorf("nested timer fired at %v, want 1.5s", firedAt)
	}
}

func TestTimerStop(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := s.AfterFunc(time.Second, func() { fired = true })
	if !tm.Pending() {
		t.Error("timer should be pending")
	}
	if !tm.Stop() {
		t.Error("Stop should report true for a pending timer")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	s.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Pending() {
		t.Error("nil timer should be inert")
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	fired := 0
	for i := 0; i < 5; i++ {
		s.AfterFunc(time.Duration(i)*time.Millisecond, func() { fired++ })
	}
	s.Clear()
	s.Advance(time.Second)
	if fired != 0 || s.Pending() != 0 {
		t.Errorf("fired = %d, pending = %d, want 0, 0", fired, s.Pending())
	}
}

func TestSchedulerNegativeDelay(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	fired := false
	s.AfterFunc(-time.Second, func() { fired = true })
	s.Advance(-time.Second)
	if !fired {
		t.Error("negative delay should fire on the next Advance")
	}
	if s.Now() != time.Second {
		t.Errorf("Now = %v, want 1s", s.Now())
	}
}
