package state

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreStartsBooting(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != BOOTING {
		t.Fatalf("phase = %v, want booting", got)
	}
}

func TestStoreScrollNeverNegative(t *testing.T) {
	store := NewStore()
	store.ScrollBy(0, 120)
	store.ScrollBy(-10, -20)
	got := store.Snapshot().Surface
	if got.ScrollX != 0 || got.ScrollY != 100 {
		t.Fatalf("scroll = (%v, %v), want (0, 100)", got.ScrollX, got.ScrollY)
	}
	store.ScrollBy(0, -1000)
	if got := store.Snapshot().Surface.ScrollY; got != 0 {
		t.Fatalf("scroll y = %v, want 0", got)
	}
	store.SetScroll(-5, 42)
	got = store.Snapshot().Surface
	if got.ScrollX != 0 || got.ScrollY != 42 {
		t.Fatalf("scroll = (%v, %v), want (0, 42)", got.ScrollX, got.ScrollY)
	}
}

func TestStoreSetSize(t *testing.T) {
	store := NewStore()
	store.SetSize(640, -1)
	got := store.Snapshot().Surface
	if got.Width != 640 || got.Height != 0 {
		t.Fatalf("size = %dx%d", got.Width, got.Height)
	}
}

func TestStoreFail(t *testing.T) {
	store := NewStore()
	store.Fail(errors.New("no framebuffer"))
	snap := store.Snapshot()
	if snap.Phase != ERROR || snap.Err != "no framebuffer" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Phase.String() != "error" {
		t.Fatalf("phase string = %q", snap.Phase.String())
	}
}

func TestStoreCountFrameConcurrent(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.CountFrame()
				_ = store.Snapshot()
			}
		}()
	}
	wg.Wait()
	if got := store.Snapshot().Frames; got != 800 {
		t.Fatalf("frames = %d, want 800", got)
	}
}
