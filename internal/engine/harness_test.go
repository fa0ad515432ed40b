package engine

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/logging"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// recordedMsg is one message a MockConn captured, decoded only as far as its
// wire tag so tests can assert "did X get sent" without re-deriving the
// whole envelope.
type recordedMsg struct {
	typ string
	raw []byte
}

// MockConn stands in for a real websocket session (internal/ws.Session),
// recording every send instead of writing to a socket.
type MockConn struct {
	mu   sync.Mutex
	sent []recordedMsg
}

func (c *MockConn) Send(msg protocol.MessageFromServer) <-chan struct{} {
	data, err := protocol.EncodeFromServer(msg)
	if err != nil {
		panic(err)
	}
	return c.record(data)
}

func (c *MockConn) SendRaw(data []byte) <-chan struct{} {
	return c.record(data)
}

func (c *MockConn) record(data []byte) <-chan struct{} {
	var env struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(data, &env)

	c.mu.Lock()
	c.sent = append(c.sent, recordedMsg{typ: env.Type, raw: data})
	c.mu.Unlock()

	done := make(chan struct{})
	close(done)
	return done
}

func (c *MockConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	for i, m := range c.sent {
		out[i] = m.typ
	}
	return out
}

func (c *MockConn) has(typ string) bool {
	for _, t := range c.types() {
		if t == typ {
			return true
		}
	}
	return false
}

func (c *MockConn) count(typ string) int {
	n := 0
	for _, t := range c.types() {
		if t == typ {
			n++
		}
	}
	return n
}

// last decodes the payload of the most recent message of the given type
// into v, which must be a pointer.
func (c *MockConn) last(typ string, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.sent) - 1; i >= 0; i-- {
		if c.sent[i].typ != typ {
			continue
		}
		var env struct {
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(c.sent[i].raw, &env); err != nil {
			return false
		}
		if err := json.Unmarshal(env.Payload, v); err != nil {
			return false
		}
		return true
	}
	return false
}

// MockLauncher stands in for the gameserver package's Supervisor, recording
// every Launch call instead of spawning a real process.
type MockLauncher struct {
	mu      sync.Mutex
	calls   []StartGameRequest
	ports   []int
	ok      bool
	cancels []chan struct{}
}

func (m *MockLauncher) Launch(req StartGameRequest, port int) (chan struct{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	m.ports = append(m.ports, port)
	if !m.ok {
		return nil, false
	}
	cancel := make(chan struct{})
	m.cancels = append(m.cancels, cancel)
	return cancel, true
}

func (m *MockLauncher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// testHarness drives a live Engine through its real event loop, the way
// internal/ws and internal/gameserver do in production.
type testHarness struct {
	t        *testing.T
	e        *Engine
	done     chan struct{}
	launcher *MockLauncher
}

func newHarness(t *testing.T) *testHarness {
	return newHarnessWithLauncher(t, nil)
}

func newHarnessWithLauncher(t *testing.T, launcher GameServerLauncher) *testHarness {
	e := New(logging.Noop{}, launcher, 40000, 40010)
	h := &testHarness{t: t, e: e, done: make(chan struct{})}
	go func() {
		e.Run()
		close(h.done)
	}()
	t.Cleanup(func() {
		h.e.Post(Shutdown{})
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Fatal("engine loop did not shut down")
		}
	})
	return h
}

// sync blocks until every event posted so far has been processed, by
// riding the same queue ordering guarantee the loop gives every event.
func (h *testHarness) sync() {
	done := make(chan struct{})
	h.e.Post(Callback{Fn: func(*Engine) { close(done) }})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for engine loop to drain")
	}
}

// connect simulates one client connecting and completing its handshake,
// returning the freshly minted id and the conn that will receive its
// server-pushed messages.
func (h *testHarness) connect(name string) (ids.PlayerId, *MockConn) {
	conn := &MockConn{}
	reply := make(chan ids.PlayerId, 1)
	h.e.Post(ConnectionMade{Conn: conn, Reply: reply})
	pid := <-reply
	h.e.Post(PlayerNameUpdated{Player: pid, Name: name})
	h.sync()
	return pid, conn
}

func (h *testHarness) send(pid ids.PlayerId, msg protocol.MessageFromPlayer) {
	h.e.Post(MessageReceived{Player: pid, Message: msg})
	h.sync()
}

// inspect runs fn against live engine state from the loop goroutine and
// blocks until it has run, mirroring how the dashboard/HTTP surface reads
// state via Callback.
func (h *testHarness) inspect(fn func(*Engine)) {
	done := make(chan struct{})
	h.e.Post(Callback{Fn: func(e *Engine) {
		fn(e)
		close(done)
	}})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for inspect callback")
	}
}

func defaultSettings() protocol.LobbySettings {
	return protocol.LobbySettings{
		Name:                 "x",
		Map:                  "Default",
		TeamCount:            2,
		PlayerLimitPerTeam:   5,
		PlayersCanChangeTeam: true,
		LobbyIsOpen:          true,
	}
}
