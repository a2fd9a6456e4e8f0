package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/state"
)

// HeadlessRenderer draws into an in-memory canvas and advances only when
// Step is called. When OutDir is set, every Every-th frame is written there
// as a PNG file.
type HeadlessRenderer struct {
	Width, Height int
	OutDir        string
	Every         int
	Overlay       *Overlay
	Logger        Logger

	*input.Queue
	surface
	clock   *ManualClock
	frame   int
	written []string
}

func NewHeadlessRenderer(store *state.Store, width, height int) *HeadlessRenderer {
	r := &HeadlessRenderer{
		Width:  width,
		Height: height,
		Every:  1,
		Queue:  input.NewQueue(eventBacklog),
		clock:  NewManualClock(),
	}
	r.surface.store = store
	r.surface.clock = r.clock
	r.surface.present = r.writeFrame
	return r
}

func (r *HeadlessRenderer) Start(ctx context.Context) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", r.Width, r.Height)
	}
	if r.OutDir != "" {
		if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	r.surface.overlay = r.Overlay
	r.surface.logger = r.Logger
	r.store.SetSize(r.Width, r.Height)
	canvas := NewCanvas(r.Width, r.Height)
	canvas.Background = Background
	canvas.ClearRect(0, 0, float64(r.Width), float64(r.Height))
	r.attach(canvas)
	logInfof(r.Logger, "headless", "canvas %dx%d, output=%q every %d", r.Width, r.Height, r.OutDir, r.Every)
	return nil
}

func (r *HeadlessRenderer) Stop() error { return nil }

// Step runs the pending frame, if any, and reports whether one ran.
func (r *HeadlessRenderer) Step() bool { return r.clock.Step() > 0 }

// Resize changes the surface size and reports it on Events. The canvas
// follows on the next frame.
func (r *HeadlessRenderer) Resize(width, height int) {
	r.store.SetSize(width, height)
	if !r.Push(input.Event{Kind: input.Resize}) {
		logErrorf(r.Logger, "headless", "resize event dropped")
	}
}

// Image returns the canvas image. It must not be used while a frame runs.
func (r *HeadlessRenderer) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return nil
	}
	return r.canvas.Image()
}

// Written lists the files written so far.
func (r *HeadlessRenderer) Written() []string { return r.written }

func (r *HeadlessRenderer) writeFrame(img *image.RGBA) error {
	r.frame++
	every := max(r.Every, 1)
	if r.OutDir == "" || r.frame%every != 0 {
		return nil
	}
	path := filepath.Join(r.OutDir, fmt.Sprintf("frame-%05d.png", r.frame))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.written = append(r.written, path)
	return nil
}
