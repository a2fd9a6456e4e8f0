package render

import (
	"context"
	"image"
	"image/draw"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/state"
	"github.com/rook-computer/ribbons/internal/system"
)

const (
	lineScroll   = 40
	eventBacklog = 16
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device        string
	FPS           int
	Width, Height int // logical canvas size; zero uses the framebuffer size
	Overlay       *Overlay
	Logger        Logger
	Debug         bool

	surface
	fbDev   *fb.Device
	frame   *image.RGBA
	events  chan input.Event
	cancel  context.CancelFunc
	running atomic.Bool
	frames  atomic.Uint64
}

func NewFBRenderer(store *state.Store) *FBRenderer {
	r := &FBRenderer{Device: "/dev/fb0", events: make(chan input.Event, eventBacklog)}
	r.surface.store = store
	r.surface.present = r.blit
	return r
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	logInfof(r.Logger, "fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())

	width, height := r.Width, r.Height
	if width <= 0 || height <= 0 {
		width, height = bounds.Dx(), bounds.Dy()
	}
	r.store.SetSize(width, height)

	canvas := NewCanvas(width, height)
	canvas.Background = Background
	canvas.ClearRect(0, 0, float64(width), float64(height))
	r.frame = image.NewRGBA(bounds)
	r.surface.clock = NewFrameClock(r.FPS)
	r.surface.overlay = r.Overlay
	r.surface.logger = r.Logger
	r.attach(canvas)

	// Switch console to KD_GRAPHICS to suppress hardware cursor
	_ = system.SetGraphicsModeWithLog(r.Logger)
	_ = system.HideCursorWithLog(r.Logger)

	keysCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	system.WatchKeys(keysCtx, r.Logger, r.onKey)

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	if !r.running.Swap(false) {
		return nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.attach(nil)
	_ = system.ShowCursorWithLog(r.Logger)
	_ = system.RestoreTextModeWithLog(r.Logger)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

func (r *FBRenderer) Events() <-chan input.Event { return r.events }

func (r *FBRenderer) onKey(key system.Key) {
	height := float64(r.store.Snapshot().Surface.Height)
	var ev input.Event
	switch key {
	case system.KeyExit:
		ev = input.Event{Kind: input.Exit}
	case system.KeyUp:
		ev = input.Event{Kind: input.Scroll, Delta: -lineScroll}
	case system.KeyDown:
		ev = input.Event{Kind: input.Scroll, Delta: lineScroll}
	case system.KeyPageUp:
		ev = input.Event{Kind: input.Scroll, Delta: -height / 2}
	case system.KeyPageDown:
		ev = input.Event{Kind: input.Scroll, Delta: height / 2}
	case system.KeyHome:
		ev = input.Event{Kind: input.ScrollHome}
	default:
		return
	}
	if !input.Send(r.events, ev) {
		logErrorf(r.Logger, "fb", "event %s dropped", ev.Kind)
	}
}

// blit scales the canvas onto the framebuffer with nearest-neighbor
// sampling. The framebuffer has no alpha, so the frame is flattened onto
// the background first.
func (r *FBRenderer) blit(canvas *image.RGBA) error {
	if r.fbDev == nil {
		return nil
	}
	flattenInto(r.frame, canvas)
	draw.Draw(r.fbDev, r.fbDev.Bounds(), r.frame, r.frame.Bounds().Min, draw.Src)
	if n := r.frames.Add(1); r.Debug && n%uint64(max(r.FPS, 1)*10) == 0 {
		logInfof(r.Logger, "fb", "heartbeat, %d frames", n)
	}
	return nil
}

// flattenInto scales src to fill dst and composites it over the opaque
// background.
func flattenInto(dst, src *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if src.Bounds().Empty() {
		return
	}
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
}
