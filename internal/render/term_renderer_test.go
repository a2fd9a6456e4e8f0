package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/state"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want input.Event
		ok   bool
	}{
		{"escape", tcell.KeyEscape, 0, input.Event{Kind: input.Exit}, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, input.Event{Kind: input.Exit}, true},
		{"q", tcell.KeyRune, 'q', input.Event{Kind: input.Exit}, true},
		{"down", tcell.KeyDown, 0, input.Event{Kind: input.Scroll, Delta: lineScroll}, true},
		{"k", tcell.KeyRune, 'k', input.Event{Kind: input.Scroll, Delta: -lineScroll}, true},
		{"page down", tcell.KeyPgDn, 0, input.Event{Kind: input.Scroll, Delta: 200}, true},
		{"page up", tcell.KeyPgUp, 0, input.Event{Kind: input.Scroll, Delta: -200}, true},
		{"home", tcell.KeyHome, 0, input.Event{Kind: input.ScrollHome}, true},
		{"other rune", tcell.KeyRune, 'x', input.Event{}, false},
		{"enter", tcell.KeyEnter, 0, input.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyEvent(tt.key, tt.ch, 400)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("keyEvent = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWheelEvent(t *testing.T) {
	if ev, ok := wheelEvent(tcell.WheelDown); !ok || ev.Delta != lineScroll {
		t.Fatalf("wheel down = %+v, %v", ev, ok)
	}
	if ev, ok := wheelEvent(tcell.WheelUp); !ok || ev.Delta != -lineScroll {
		t.Fatalf("wheel up = %+v, %v", ev, ok)
	}
	if _, ok := wheelEvent(tcell.Button1); ok {
		t.Fatal("button press treated as scroll")
	}
}

func TestCellColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2*CellWidth, CellHeight))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	draw.Draw(img, image.Rect(0, 0, CellWidth, CellHeight/2), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, CellHeight/2, CellWidth, CellHeight), image.NewUniform(blue), image.Point{}, draw.Src)

	top, bottom := cellColors(img, 0, 0)
	if top != red || bottom != blue {
		t.Fatalf("cell 0 = %+v / %+v", top, bottom)
	}
	// A transparent block shows the background.
	if top, _ := cellColors(img, 1, 0); top != Background {
		t.Fatalf("transparent cell = %+v", top)
	}
	// Cells past the canvas show the background as well.
	if top, _ := cellColors(img, 5, 5); top != Background {
		t.Fatalf("cell outside the canvas = %+v", top)
	}
}

func TestTermRendererSimulationScreen(t *testing.T) {
	store := state.NewStore()
	r := NewTermRenderer(store)
	r.Screen = tcell.NewSimulationScreen("UTF-8")
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	cols, rows := r.Screen.Size()
	surf := store.Snapshot().Surface
	if surf.Width != cols*CellWidth || surf.Height != rows*CellHeight {
		t.Fatalf("surface %dx%d for %dx%d cells", surf.Width, surf.Height, cols, rows)
	}
	if _, err := r.Context(); err != nil {
		t.Fatalf("context: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
