package input

import (
	"context"
	"testing"
)

func TestSendDropsWhenFull(t *testing.T) {
	ch := make(chan Event, 1)
	if !Send(ch, Event{Kind: Scroll, Delta: 40}) {
		t.Fatal("first send dropped")
	}
	if Send(ch, Event{Kind: Exit}) {
		t.Fatal("send into a full channel should drop")
	}
	if ev := <-ch; ev.Kind != Scroll || ev.Delta != 40 {
		t.Fatalf("received %+v", ev)
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue(1)
	if err := q.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	select {
	case ev := <-q.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
	if !q.Push(Event{Kind: Resize}) {
		t.Fatal("push into an empty queue dropped")
	}
	if q.Push(Event{Kind: Exit}) {
		t.Fatal("push into a full queue should drop")
	}
	if ev := <-q.Events(); ev.Kind != Resize {
		t.Fatalf("received %+v", ev)
	}
	if err := q.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
