package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/state"
)

const upperHalfBlock = '▀'

// TermRenderer draws the canvas into a terminal. Each cell covers
// CellWidth x CellHeight canvas pixels and shows the averaged top and
// bottom halves as the foreground and background of a half block.
type TermRenderer struct {
	FPS     int
	Overlay *Overlay
	Logger  Logger
	// Screen overrides the terminal screen, e.g. with a simulation screen.
	Screen tcell.Screen

	surface
	events  chan input.Event
	done    chan struct{}
	running atomic.Bool
}

func NewTermRenderer(store *state.Store) *TermRenderer {
	r := &TermRenderer{events: make(chan input.Event, eventBacklog)}
	r.surface.store = store
	r.surface.present = r.draw
	return r
}

func (r *TermRenderer) Start(ctx context.Context) error {
	if r.Screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		r.Screen = screen
	}
	if err := r.Screen.Init(); err != nil {
		return err
	}
	r.Screen.HideCursor()
	r.Screen.EnableMouse()
	r.Screen.Clear()

	cols, rows := r.Screen.Size()
	width, height := cols*CellWidth, rows*CellHeight
	r.store.SetSize(width, height)
	logInfof(r.Logger, "term", "terminal %dx%d cells, canvas %dx%d", cols, rows, width, height)

	canvas := NewCanvas(width, height)
	canvas.Background = Background
	canvas.ClearRect(0, 0, float64(width), float64(height))
	r.surface.clock = NewFrameClock(r.FPS)
	r.surface.overlay = r.Overlay
	r.surface.logger = r.Logger
	r.attach(canvas)

	r.done = make(chan struct{})
	r.running.Store(true)
	go r.pollEvents()
	return nil
}

func (r *TermRenderer) Stop() error {
	if !r.running.Swap(false) {
		return nil
	}
	r.attach(nil)
	r.Screen.Fini()
	<-r.done
	return nil
}

func (r *TermRenderer) Events() <-chan input.Event { return r.events }

func (r *TermRenderer) pollEvents() {
	defer close(r.done)
	for {
		ev := r.Screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			cols, rows := ev.Size()
			r.store.SetSize(cols*CellWidth, rows*CellHeight)
			r.Screen.Sync()
			r.emit(input.Event{Kind: input.Resize})
		case *tcell.EventKey:
			height := float64(r.store.Snapshot().Surface.Height)
			if e, ok := keyEvent(ev.Key(), ev.Rune(), height); ok {
				r.emit(e)
			}
		case *tcell.EventMouse:
			if e, ok := wheelEvent(ev.Buttons()); ok {
				r.emit(e)
			}
		}
	}
}

func (r *TermRenderer) emit(ev input.Event) {
	if !input.Send(r.events, ev) {
		logErrorf(r.Logger, "term", "event %s dropped", ev.Kind)
	}
}

func keyEvent(key tcell.Key, ch rune, height float64) (input.Event, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.Event{Kind: input.Exit}, true
	case tcell.KeyUp:
		return input.Event{Kind: input.Scroll, Delta: -lineScroll}, true
	case tcell.KeyDown:
		return input.Event{Kind: input.Scroll, Delta: lineScroll}, true
	case tcell.KeyPgUp:
		return input.Event{Kind: input.Scroll, Delta: -height / 2}, true
	case tcell.KeyPgDn:
		return input.Event{Kind: input.Scroll, Delta: height / 2}, true
	case tcell.KeyHome:
		return input.Event{Kind: input.ScrollHome}, true
	case tcell.KeyRune:
		switch ch {
		case 'q':
			return input.Event{Kind: input.Exit}, true
		case 'k':
			return input.Event{Kind: input.Scroll, Delta: -lineScroll}, true
		case 'j':
			return input.Event{Kind: input.Scroll, Delta: lineScroll}, true
		}
	}
	return input.Event{}, false
}

func wheelEvent(buttons tcell.ButtonMask) (input.Event, bool) {
	switch {
	case buttons&tcell.WheelUp != 0:
		return input.Event{Kind: input.Scroll, Delta: -lineScroll}, true
	case buttons&tcell.WheelDown != 0:
		return input.Event{Kind: input.Scroll, Delta: lineScroll}, true
	}
	return input.Event{}, false
}

func (r *TermRenderer) draw(img *image.RGBA) error {
	cols, rows := r.Screen.Size()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := cellColors(img, cx, cy)
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			r.Screen.SetContent(cx, cy, upperHalfBlock, nil, style)
		}
	}
	r.Screen.Show()
	return nil
}

func termColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellColors averages the upper and lower halves of the canvas block
// behind cell (cx, cy), flattened over the background.
func cellColors(img *image.RGBA, cx, cy int) (top, bottom color.RGBA) {
	x0, y0 := cx*CellWidth, cy*CellHeight
	half := CellHeight / 2
	top = averageBlock(img, image.Rect(x0, y0, x0+CellWidth, y0+half))
	bottom = averageBlock(img, image.Rect(x0, y0+half, x0+CellWidth, y0+CellHeight))
	return top, bottom
}

func averageBlock(img *image.RGBA, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return Background
	}
	var sr, sg, sb int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := img.RGBAAt(x, y)
			inv := 255 - int(p.A)
			sr += int(p.R) + int(Background.R)*inv/255
			sg += int(p.G) + int(Background.G)*inv/255
			sb += int(p.B) + int(Background.B)*inv/255
		}
	}
	n := r.Dx() * r.Dy()
	return color.RGBA{
		R: uint8(min(255, (sr+n/2)/n)),
		G: uint8(min(255, (sg+n/2)/n)),
		B: uint8(min(255, (sb+n/2)/n)),
		A: 0xFF,
	}
}
