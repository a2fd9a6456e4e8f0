package render

import (
	"context"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/ribbon"
	"github.com/rook-computer/ribbons/internal/state"
)

func startHeadless(t *testing.T, r *HeadlessRenderer, cfg ribbon.Config) *ribbon.Manager {
	t.Helper()
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("start renderer: %v", err)
	}
	m := ribbon.NewManager(cfg, r, ribbon.NewGenerator(rand.New(rand.NewPCG(1, 2))))
	if err := m.Start(); err != nil {
		t.Fatalf("start manager: %v", err)
	}
	t.Cleanup(m.Stop)
	return m
}

func TestHeadlessRendererDrawsRibbons(t *testing.T) {
	store := state.NewStore()
	r := NewHeadlessRenderer(store, 320, 240)
	cfg := ribbon.DefaultConfig()
	cfg.RibbonCount = 10
	cfg.Delay = 0
	cfg.Phase = 0.1
	cfg.ColorAlpha = 1
	startHeadless(t, r, cfg)

	for i := 0; i < 15; i++ {
		if !r.Step() {
			t.Fatalf("step %d ran no frame", i)
		}
	}
	if got := store.Snapshot().Frames; got != 16 {
		t.Fatalf("frames = %d, want 16 (first frame plus 15 steps)", got)
	}

	img := r.Image()
	painted := 0
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			if img.RGBAAt(x, y) != Background {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Fatal("no ribbon pixels on the canvas")
	}
}

func TestHeadlessRendererWritesEveryNthFrame(t *testing.T) {
	dir := t.TempDir()
	r := NewHeadlessRenderer(state.NewStore(), 64, 48)
	r.OutDir = dir
	r.Every = 2
	startHeadless(t, r, ribbon.DefaultConfig())

	for i := 0; i < 5; i++ {
		r.Step()
	}
	written := r.Written()
	if len(written) != 3 {
		t.Fatalf("wrote %v, want 3 files", written)
	}
	for _, path := range written {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("frame file %s: %v", path, err)
		}
	}
}

func TestHeadlessRendererResize(t *testing.T) {
	store := state.NewStore()
	r := NewHeadlessRenderer(store, 64, 48)
	m := startHeadless(t, r, ribbon.DefaultConfig())

	r.Resize(100, 50)
	select {
	case ev := <-r.Events():
		if ev.Kind != input.Resize {
			t.Fatalf("event = %+v, want resize", ev)
		}
	default:
		t.Fatal("Resize did not report an event")
	}

	r.Step()
	if b := r.Image().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("canvas bounds after resize = %v", b)
	}
	if got := m.Metrics(); got.Width != 100 || got.Height != 50 {
		t.Fatalf("manager metrics = %+v", got)
	}
}

func TestHeadlessRendererGrowKeepsMetricsInStep(t *testing.T) {
	store := state.NewStore()
	r := NewHeadlessRenderer(store, 320, 240)
	m := startHeadless(t, r, ribbon.DefaultConfig())

	r.Resize(640, 480)
	for i := 0; i < 40; i++ {
		r.Step()
		if got := m.Metrics(); got.Width != 640 || got.Height != 480 {
			t.Fatalf("step %d: manager metrics = %+v", i, got)
		}
	}
	if b := r.Image().Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("canvas bounds = %v", b)
	}
}

func TestHeadlessRendererRejectsEmptyCanvas(t *testing.T) {
	r := NewHeadlessRenderer(state.NewStore(), 0, 10)
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected an error for a zero width canvas")
	}
	if _, err := r.Context(); err == nil {
		t.Fatal("context available before a successful start")
	}
}

func TestHeadlessRendererOverlay(t *testing.T) {
	r := NewHeadlessRenderer(state.NewStore(), 200, 100)
	r.Overlay = &Overlay{QRPayload: "ribbons", QRSize: 40, Margin: 5}
	cfg := ribbon.DefaultConfig()
	cfg.RibbonCount = 0
	startHeadless(t, r, cfg)
	r.Step()
	if got := r.Image().RGBAAt(194, 94); got.A != 255 || got == Background {
		t.Fatalf("badge pixel = %+v", got)
	}
}

func TestSurfaceSnapshotIsACopy(t *testing.T) {
	store := state.NewStore()
	r := NewHeadlessRenderer(store, 32, 24)
	if r.Snapshot() != nil {
		t.Fatal("snapshot before start should be nil")
	}
	startHeadless(t, r, ribbon.DefaultConfig())
	r.Step()

	snap := r.Snapshot()
	if snap.Bounds() != r.Image().Bounds() {
		t.Fatalf("snapshot bounds = %v", snap.Bounds())
	}
	snap.Pix[0] ^= 0xFF
	if snap.Pix[0] == r.Image().Pix[0] {
		t.Fatal("snapshot shares pixels with the canvas")
	}
}
