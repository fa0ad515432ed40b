package engine

import (
	"testing"
	"time"
)

func TestEventQueue_PopBlocksUntilPush(t *testing.T) {
	q := newEventQueue()
	done := make(chan Event, 1)
	go func() {
		ev, ok := q.Pop()
		if !ok {
			return
		}
		done <- ev
	}()

	select {
	case <-done:
		t.Fatal("Pop returned before anything was pushed")
	case <-time.After(50 * time.Millisecond):
	}

	q.Push(Shutdown{})
	select {
	case ev := <-done:
		if _, ok := ev.(Shutdown); !ok {
			t.Errorf("expected to receive the pushed Shutdown event, got %T", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Pop to unblock")
	}
}

func TestEventQueue_PreservesFIFOOrder(t *testing.T) {
	q := newEventQueue()
	q.Push(PlayerNameUpdated{Name: "first"})
	q.Push(PlayerNameUpdated{Name: "second"})

	ev1, ok := q.Pop()
	if !ok || ev1.(PlayerNameUpdated).Name != "first" {
		t.Fatalf("expected first event, got %+v", ev1)
	}
	ev2, ok := q.Pop()
	if !ok || ev2.(PlayerNameUpdated).Name != "second" {
		t.Fatalf("expected second event, got %+v", ev2)
	}
}

func TestEventQueue_CloseUnblocksPop(t *testing.T) {
	q := newEventQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	q.Close()
	select {
	case ok := <-done:
		if ok {
			t.Error("expected Pop to report ok=false after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Close to unblock Pop")
	}
}

func TestEventQueue_PushAfterCloseIsDropped(t *testing.T) {
	q := newEventQueue()
	q.Close()
	q.Push(Shutdown{})

	_, ok := q.Pop()
	if ok {
		t.Error("expected Pop on a closed, empty queue to report ok=false")
	}
}
