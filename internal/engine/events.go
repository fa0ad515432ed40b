package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// Event is one of the kinds spec.md §4.3 enumerates. Every event is
// processed to completion before the next (spec.md §4.3 handling contract).
type Event interface {
	isEvent()
}

// ConnectionMade is posted once per accepted session, before the handshake
// completes. Reply carries back the freshly minted PlayerId so the session
// task can use it for every subsequent event it posts; it must be buffered
// (capacity >= 1) so the loop's send never blocks.
type ConnectionMade struct {
	Conn  Sender
	Reply chan ids.PlayerId
}

func (ConnectionMade) isEvent() {}

// PlayerNameUpdated is posted once the session task reads the client's
// InitialHandshake.
type PlayerNameUpdated struct {
	Player ids.PlayerId
	Name   string
}

func (PlayerNameUpdated) isEvent() {}

// MessageReceived carries one decoded client request.
type MessageReceived struct {
	Player  ids.PlayerId
	Message protocol.MessageFromPlayer
}

func (MessageReceived) isEvent() {}

// ConnectionLost is posted by a session task on any read/parse failure, and
// synthesized by the engine itself for the Disconnecting request
// (spec.md §4.3.2).
type ConnectionLost struct {
	Player ids.PlayerId
}

func (ConnectionLost) isEvent() {}

// Callback is a deferred mutation posted by a supervisor task
// (spec.md §4.3, §4.4 step 4-5). It runs with full engine access, exactly as
// if it were any other event handler.
type Callback struct {
	Fn func(*Engine)
}

func (Callback) isEvent() {}

// Shutdown triggers the graceful-shutdown sequence (spec.md §4.1, §4.3).
type Shutdown struct{}

func (Shutdown) isEvent() {}

// Post implements EventPoster by enqueueing onto the engine's own queue.
func (e *Engine) Post(ev Event) {
	e.queue.Push(ev)
}

// EventPoster lets a detached task (session I/O, supervisor) hand an event
// back to the loop without depending on the Engine type directly.
type EventPoster interface {
	Post(ev Event)
}
