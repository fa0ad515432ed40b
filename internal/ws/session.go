// Package ws adapts coder/websocket connections to the engine's event loop
// (spec.md §4.1, §4.2): one Session per connection, a detached writer task
// implementing engine.Sender, and a read loop that turns frames into events.
package ws

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"github.com/Elekrisk/moba-try-5/internal/engine"
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/logging"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// writeTimeout bounds a single outbound frame write. The handshake itself
// has no deadline (spec.md §4.2 leaves it to the transport).
const writeTimeout = 10 * time.Second

type outbound struct {
	data []byte
	done chan struct{}
}

// Session is one client connection's I/O task (spec.md §4.2). It implements
// engine.Sender so the loop can hand it messages without knowing anything
// about websockets.
type Session struct {
	conn   *websocket.Conn
	poster engine.EventPoster
	log    logging.Logger

	out    chan outbound
	closed chan struct{}
}

func newSession(conn *websocket.Conn, poster engine.EventPoster, log logging.Logger) *Session {
	s := &Session{
		conn:   conn,
		poster: poster,
		log:    log,
		out:    make(chan outbound, 64),
		closed: make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

// Send implements engine.Sender.
func (s *Session) Send(msg protocol.MessageFromServer) <-chan struct{} {
	data, err := protocol.EncodeFromServer(msg)
	if err != nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.SendRaw(data)
}

// SendRaw implements engine.Sender, sharing one encoded payload across
// recipients without re-marshaling it (spec.md §9).
func (s *Session) SendRaw(data []byte) <-chan struct{} {
	done := make(chan struct{})
	select {
	case s.out <- outbound{data: data, done: done}:
	case <-s.closed:
		close(done)
	}
	return done
}

func (s *Session) writeLoop() {
	for {
		select {
		case m := <-s.out:
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := s.conn.Write(ctx, websocket.MessageText, m.data)
			cancel()
			close(m.done)
			if err != nil {
				return
			}
		case <-s.closed:
			return
		}
	}
}

func (s *Session) close() {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
}

// run drives one connection through AwaitingHandshake -> Ready -> Closed
// (spec.md §4.2). It blocks until the connection ends.
func (s *Session) run(ctx context.Context) {
	defer s.close()
	defer s.conn.CloseNow()

	_, data, err := s.conn.Read(ctx)
	if err != nil {
		return
	}
	msg, err := protocol.DecodeFromPlayer(data)
	if err != nil {
		return
	}
	hs, ok := msg.(protocol.InitialHandshake)
	if !ok {
		return
	}

	reply := make(chan ids.PlayerId, 1)
	s.poster.Post(engine.ConnectionMade{Conn: s, Reply: reply})
	pid := <-reply
	s.poster.Post(engine.PlayerNameUpdated{Player: pid, Name: hs.Name})
	<-s.Send(protocol.InitialHandshakeResponse{ID: pid})

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			s.poster.Post(engine.ConnectionLost{Player: pid})
			return
		}
		msg, err := protocol.DecodeFromPlayer(data)
		if err != nil {
			s.log.Printf("player %s: malformed message, closing connection: %v", pid, err)
			s.poster.Post(engine.ConnectionLost{Player: pid})
			return
		}
		s.poster.Post(engine.MessageReceived{Player: pid, Message: msg})
	}
}
