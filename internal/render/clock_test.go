package render

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFrameClockFires(t *testing.T) {
	clock := NewFrameClock(100)
	if clock.Interval() != 10*time.Millisecond {
		t.Fatalf("interval = %v", clock.Interval())
	}
	done := make(chan struct{})
	clock.ScheduleFrame(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never ran")
	}
}

func TestFrameClockCancel(t *testing.T) {
	clock := NewFrameClock(20)
	var ran atomic.Bool
	h := clock.ScheduleFrame(func() { ran.Store(true) })
	h.Cancel()
	time.Sleep(150 * time.Millisecond)
	if ran.Load() {
		t.Fatal("cancelled callback ran")
	}
}

func TestFrameClockDefaultFPS(t *testing.T) {
	if got := NewFrameClock(0).Interval(); got != time.Second/DefaultFPS {
		t.Fatalf("interval = %v", got)
	}
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock()
	count := 0
	var tick func()
	tick = func() {
		count++
		clock.ScheduleFrame(tick)
	}
	clock.ScheduleFrame(tick)
	cancelled := clock.ScheduleFrame(func() { t.Fatal("cancelled callback ran") })
	cancelled.Cancel()

	if ran := clock.Step(); ran != 1 {
		t.Fatalf("first step ran %d callbacks", ran)
	}
	if clock.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", clock.Pending())
	}
	clock.Step()
	clock.Step()
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
