package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// StartGameRequest is everything the supervisor needs to launch and
// bootstrap one match (spec.md §4.4). Poster is how the supervisor's
// detached tasks report back into the loop (step 4-5 Callbacks).
type StartGameRequest struct {
	LobbyID ids.LobbyId
	Players map[ids.Team][]protocol.LobbyPlayer
	Poster  EventPoster
}

// GameServerLauncher is the engine's view of the game-server supervisor
// (spec.md §4.4). The concrete implementation lives in package gameserver;
// the engine depends only on this interface so the two packages don't
// import each other.
type GameServerLauncher interface {
	// Launch spawns the child on the given (already-allocated) port,
	// performs the bootstrap handshake, and posts Callback events for
	// every outcome. It must not block the caller (the event loop) — all
	// work happens in detached goroutines the supervisor owns. The port
	// pool itself is engine-owned (spec.md §5 "Port pool: mutated only by
	// the loop"); Launch only ever receives a port, never allocates one.
	Launch(req StartGameRequest, port int) (cancel chan struct{}, ok bool)
}
