// Package gameserver supervises the external game-server processes a lobby
// hands matches off to once champion select locks in (spec.md §4.4). It
// implements engine.GameServerLauncher; the engine package never imports this
// one, so wiring happens the other way, at cmd/server/main.go.
package gameserver

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/Elekrisk/moba-try-5/internal/engine"
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/logging"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// dialRetryInterval is how often the bootstrap dial is retried while the
// child is starting up. Spec.md §7 gives game-server bootstrap no explicit
// timeout; it is cancelled only by process exit or the lobby emptying.
const dialRetryInterval = 50 * time.Millisecond

// Config describes how to spawn game-server children.
type Config struct {
	Mode LaunchMode
	Path string
}

// Supervisor launches and watches one game-server child per match. It holds
// no lobby/player state of its own (that stays engine-owned per spec.md §5);
// it only spawns, bootstraps, watches, and reports back via Callback events.
type Supervisor struct {
	cfg     Config
	log     logging.Logger
	spawner ProcessSpawner
	dialer  Dialer
}

// NewSupervisor builds a production Supervisor using the real process
// spawner and TCP dialer.
func NewSupervisor(cfg Config, log logging.Logger) *Supervisor {
	return &Supervisor{cfg: cfg, log: log, spawner: execSpawner{}, dialer: netDialer{}}
}

// Launch implements engine.GameServerLauncher. It never blocks: all work
// happens on a goroutine spawned here.
func (s *Supervisor) Launch(req engine.StartGameRequest, port int) (cancel chan struct{}, ok bool) {
	token := ids.NewToken()
	cancel = make(chan struct{})
	go s.run(req, port, token, cancel)
	return cancel, true
}

func (s *Supervisor) run(req engine.StartGameRequest, port int, token []byte, cancel chan struct{}) {
	done := make(chan struct{})
	defer close(done)

	handle, err := s.spawner.Spawn(s.cfg.Mode, s.cfg.Path, token, port)
	if err != nil {
		s.log.Printf("lobby %s: failed to spawn game server: %v", req.LobbyID, err)
		s.reportFailure(req)
		return
	}

	exited := make(chan error, 1)
	go func() { exited <- handle.Wait() }()

	reply := make(chan *protocol.PlayerTokensGenerated, 1)
	bootErr := make(chan error, 1)
	go s.bootstrap(port, token, req, reply, bootErr, done)

	select {
	case tokens := <-reply:
		s.reportStarted(req, tokens)
	case err := <-bootErr:
		s.log.Printf("lobby %s: game server bootstrap failed: %v", req.LobbyID, err)
		_ = handle.Kill()
		<-exited
		s.reportFailure(req)
		return
	case <-cancel:
		_ = handle.Kill()
		<-exited
		s.reportReleaseOnly(req)
		return
	case <-exited:
		s.log.Printf("lobby %s: game server exited before completing bootstrap", req.LobbyID)
		s.reportFailure(req)
		return
	}

	// Bootstrap succeeded; the match is live. Keep watching the child until
	// it exits or every player leaves the lobby.
	select {
	case exitErr := <-exited:
		if exitErr == nil {
			s.log.Printf("lobby %s: game server exited cleanly", req.LobbyID)
			s.reportCompleted(req)
		} else {
			s.log.Printf("lobby %s: game server exited with error: %v", req.LobbyID, exitErr)
			s.reportFailure(req)
		}
	case <-cancel:
		_ = handle.Kill()
		<-exited
		s.reportReleaseOnly(req)
	}
}

// bootstrap dials the child's bootstrap port until it accepts, sends the
// lobby's initial message, and waits for the reply (spec.md §4.4 step 3).
func (s *Supervisor) bootstrap(port int, token []byte, req engine.StartGameRequest, reply chan<- *protocol.PlayerTokensGenerated, errc chan<- error, done <-chan struct{}) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	var conn net.Conn
	for {
		select {
		case <-done:
			return
		default:
		}
		c, err := s.dialer.Dial(addr)
		if err == nil {
			conn = c
			break
		}
		select {
		case <-done:
			return
		case <-time.After(dialRetryInterval):
		}
	}
	defer conn.Close()

	msg := protocol.LobbyInitialMessage{Token: token, Players: req.Players}
	if err := protocol.WriteFramed(conn, msg); err != nil {
		select {
		case errc <- err:
		case <-done:
		}
		return
	}

	var resp protocol.PlayerTokensGenerated
	if err := protocol.ReadFramed(bufio.NewReader(conn), &resp); err != nil {
		select {
		case errc <- err:
		case <-done:
		}
		return
	}

	select {
	case reply <- &resp:
	case <-done:
	}
}

func (s *Supervisor) reportStarted(req engine.StartGameRequest, tokens *protocol.PlayerTokensGenerated) {
	lid := req.LobbyID
	players := tokens.Players
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.GameStarted(lid, players)
	}})
}

// reportFailure is spec.md §4.4 step 4's "Bootstrap error" / mid-match death
// path: refuse the lobby and forcibly empty it, then release the handle.
func (s *Supervisor) reportFailure(req engine.StartGameRequest) {
	lid := req.LobbyID
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.FailGameServer(lid)
	}})
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.ReleaseGameServer(lid)
	}})
}

// reportReleaseOnly is the cancel-signal path: the lobby is already gone, so
// there's nothing left to refuse — just free the handle (spec.md §4.4 step 5).
func (s *Supervisor) reportReleaseOnly(req engine.StartGameRequest) {
	lid := req.LobbyID
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.ReleaseGameServer(lid)
	}})
}

// reportCompleted is the clean-exit path (spec.md §7.3): the match finished
// normally, so every member is sent home with no RequestRefused, then the
// handle is released.
func (s *Supervisor) reportCompleted(req engine.StartGameRequest) {
	lid := req.LobbyID
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.CompleteGameServer(lid)
	}})
	req.Poster.Post(engine.Callback{Fn: func(e *engine.Engine) {
		e.ReleaseGameServer(lid)
	}})
}
