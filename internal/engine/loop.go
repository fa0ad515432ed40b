package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// Run consumes events until Shutdown is processed and every outbound
// broadcast from that Shutdown has been attempted, then returns
// (spec.md §4.3, §5 "suspension points in the core loop").
func (e *Engine) Run() {
	for {
		ev, ok := e.queue.Pop()
		if !ok {
			return
		}
		e.dispatch(ev)
		e.publishStats()
		if e.exiting {
			e.shutdownWG.Wait()
			e.queue.Close()
			return
		}
	}
}

func (e *Engine) dispatch(ev Event) {
	switch ev := ev.(type) {
	case ConnectionMade:
		e.handleConnectionMade(ev)
	case PlayerNameUpdated:
		e.handlePlayerNameUpdated(ev)
	case MessageReceived:
		e.handleMessageReceived(ev)
	case ConnectionLost:
		e.handleConnectionLost(ev)
	case Callback:
		ev.Fn(e)
	case Shutdown:
		e.handleShutdown()
	default:
		e.log.Printf("unknown event type %T", ev)
	}
}

func (e *Engine) handleConnectionMade(ev ConnectionMade) {
	pid := ids.NewPlayerId()
	e.players[pid] = &Player{ID: pid, Conn: ev.Conn}
	ev.Reply <- pid
	e.log.Printf("connection accepted, assigned player %s", pid)
}

func (e *Engine) handlePlayerNameUpdated(ev PlayerNameUpdated) {
	p, ok := e.players[ev.Player]
	if !ok {
		return
	}
	p.DisplayName = ev.Name
}

// handleShutdown implements spec.md §4.3: broadcast ServerShutdown to every
// connected player, await those sends, then let Run drain and return.
func (e *Engine) handleShutdown() {
	if e.exiting {
		return
	}
	e.exiting = true
	e.log.Printf("shutdown requested, notifying %d players", len(e.players))
	data, err := protocol.EncodeFromServer(protocol.ServerShutdown{})
	if err != nil {
		e.log.Printf("failed to encode ServerShutdown: %v", err)
		return
	}
	for _, p := range e.players {
		e.awaitSendRaw(p, data)
	}
}

// send queues msg to p without waiting for delivery (the common case).
func (e *Engine) send(p *Player, msg protocol.MessageFromServer) {
	if p == nil || p.Conn == nil {
		return
	}
	p.Conn.Send(msg)
}

// awaitSendRaw queues an already-encoded message to p and registers its
// completion against shutdownWG, used only by the Shutdown broadcast.
func (e *Engine) awaitSendRaw(p *Player, data []byte) {
	if p == nil || p.Conn == nil {
		return
	}
	done := p.Conn.SendRaw(data)
	if done == nil {
		return
	}
	e.shutdownWG.Add(1)
	go func() {
		defer e.shutdownWG.Done()
		<-done
	}()
}

// broadcast sends msg to every member of l except the ids listed in except.
// The payload is encoded exactly once and the resulting bytes are shared
// across every recipient's writer task (spec.md §9 broadcast-cost note).
func (e *Engine) broadcast(l *Lobby, msg protocol.MessageFromServer, except ...ids.PlayerId) {
	data, err := protocol.EncodeFromServer(msg)
	if err != nil {
		e.log.Printf("failed to encode broadcast %T: %v", msg, err)
		return
	}
	for _, pid := range l.Members() {
		skip := false
		for _, ex := range except {
			if pid == ex {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		p, ok := e.players[pid]
		if !ok || p.Conn == nil {
			continue
		}
		p.Conn.SendRaw(data)
	}
}
