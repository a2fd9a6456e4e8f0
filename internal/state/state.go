package state

import "sync"

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	}
	return "unknown"
}

// Surface is the drawable area as seen by the animation: its pixel size and
// how far the viewer has scrolled.
type Surface struct {
	Width   int
	Height  int
	ScrollX float64
	ScrollY float64
}

type State struct {
	Phase   Phase
	Surface Surface
	Frames  uint64
	Err     string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// Fail moves the store into ERROR and records the message.
func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

func (store *Store) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	store.mu.Lock()
	store.state.Surface.Width = width
	store.state.Surface.Height = height
	store.mu.Unlock()
}

// ScrollBy moves the scroll offsets by the given deltas. Offsets never go
// below zero.
func (store *Store) ScrollBy(dx, dy float64) {
	store.mu.Lock()
	store.state.Surface.ScrollX = max(0, store.state.Surface.ScrollX+dx)
	store.state.Surface.ScrollY = max(0, store.state.Surface.ScrollY+dy)
	store.mu.Unlock()
}

func (store *Store) SetScroll(x, y float64) {
	store.mu.Lock()
	store.state.Surface.ScrollX = max(0, x)
	store.state.Surface.ScrollY = max(0, y)
	store.mu.Unlock()
}

// CountFrame records a presented frame and returns the new total.
func (store *Store) CountFrame() uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Frames++
	return store.state.Frames
}
