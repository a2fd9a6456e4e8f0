package render

import (
	"sync"
	"time"

	"github.com/rook-computer/ribbons/internal/ribbon"
)

// FrameClock fires each scheduled callback once after a fixed frame
// interval.
type FrameClock struct {
	interval time.Duration
}

func NewFrameClock(fps int) *FrameClock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &FrameClock{interval: time.Second / time.Duration(fps)}
}

func (c *FrameClock) Interval() time.Duration { return c.interval }

func (c *FrameClock) ScheduleFrame(fn func()) ribbon.FrameHandle {
	return timerHandle{time.AfterFunc(c.interval, fn)}
}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Cancel() { h.t.Stop() }

// ManualClock holds scheduled callbacks until Step runs them. It drives
// headless rendering and tests.
type ManualClock struct {
	mu      sync.Mutex
	pending []*manualHandle
}

type manualHandle struct {
	mu        sync.Mutex
	fn        func()
	cancelled bool
}

func (h *manualHandle) Cancel() {
	h.mu.Lock()
	h.cancelled = true
	h.mu.Unlock()
}

func (h *manualHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.cancelled
}

func NewManualClock() *ManualClock { return &ManualClock{} }

func (c *ManualClock) ScheduleFrame(fn func()) ribbon.FrameHandle {
	h := &manualHandle{fn: fn}
	c.mu.Lock()
	c.pending = append(c.pending, h)
	c.mu.Unlock()
	return h
}

// Step runs every callback scheduled before the call and returns how many
// ran. Callbacks scheduled while stepping wait for the next Step.
func (c *ManualClock) Step() int {
	c.mu.Lock()
	due := c.pending
	c.pending = nil
	c.mu.Unlock()

	ran := 0
	for _, h := range due {
		if !h.live() {
			continue
		}
		h.fn()
		ran++
	}
	return ran
}

// Pending reports how many callbacks are waiting, cancelled ones included.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
