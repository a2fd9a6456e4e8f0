package input

import "context"

type Kind string

const (
	Exit       Kind = "exit"
	Scroll     Kind = "scroll"
	ScrollHome Kind = "scroll-home"
	Resize     Kind = "resize"
)

// Event is a user or surface event. Delta carries the vertical scroll
// distance in pixels for Scroll events and is zero otherwise.
type Event struct {
	Kind  Kind
	Delta float64
}

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Send delivers ev without blocking. It reports false when the channel is
// full and the event was dropped.
func Send(ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}

// Queue is a Source fed by its owner through Push, for backends without
// their own input device.
type Queue struct{ ch chan Event }

func NewQueue(backlog int) *Queue { return &Queue{ch: make(chan Event, max(backlog, 0))} }

func (q *Queue) Start(ctx context.Context) error { return nil }
func (q *Queue) Stop() error                     { return nil }
func (q *Queue) Events() <-chan Event            { return q.ch }

// Push queues ev without blocking and reports whether it was accepted.
func (q *Queue) Push(ev Event) bool { return Send(q.ch, ev) }
