package render

import (
	"errors"
	"image"
	"sync"

	"github.com/rook-computer/ribbons/internal/ribbon"
	"github.com/rook-computer/ribbons/internal/state"
)

var errNotStarted = errors.New("renderer not started")

// surface is the part of the animation environment every backend shares:
// metrics come from the state store, drawing goes to a Canvas, and each
// frame is followed by the overlay and a present step. All canvas access
// happens inside frames, under mu.
type surface struct {
	store   *state.Store
	clock   Clock
	overlay *Overlay
	logger  Logger
	present func(img *image.RGBA) error

	mu     sync.Mutex
	canvas *Canvas
}

func (s *surface) attach(canvas *Canvas) {
	s.mu.Lock()
	s.canvas = canvas
	s.mu.Unlock()
}

func (s *surface) Metrics() ribbon.Metrics {
	surf := s.store.Snapshot().Surface
	return ribbon.Metrics{
		Width:   float64(surf.Width),
		Height:  float64(surf.Height),
		ScrollX: surf.ScrollX,
		ScrollY: surf.ScrollY,
	}
}

func (s *surface) Context() (ribbon.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return nil, errNotStarted
	}
	return s.canvas, nil
}

func (s *surface) ScheduleFrame(fn func()) ribbon.FrameHandle {
	return s.clock.ScheduleFrame(func() { s.runFrame(fn) })
}

func (s *surface) runFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return
	}
	surf := s.store.Snapshot().Surface
	s.canvas.Resize(surf.Width, surf.Height)

	fn()

	img := s.canvas.Image()
	s.overlay.Draw(img)
	if s.present != nil {
		if err := s.present(img); err != nil {
			logErrorf(s.logger, "render", "present failed: %v", err)
		}
	}
	s.store.CountFrame()
}

// Snapshot returns a copy of the last finished frame, or nil before Start.
func (s *surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return nil
	}
	src := s.canvas.Image()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// RunFrame runs fn now as a complete frame: resize, draw, overlay and
// present.
func (s *surface) RunFrame(fn func()) { s.runFrame(fn) }
