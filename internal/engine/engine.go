package engine

import (
	"sync"
	"sync/atomic"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/logging"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// Engine is the single authoritative mutator of lobby and player state
// (spec.md §3 Ownership, §4.3). The state maps, the port pool and the
// exiting flag below are read and written only from the loop goroutine
// running Run; other goroutines reach the engine only through the event
// queue, or read the atomically published stats copy.
type Engine struct {
	log      logging.Logger
	launcher GameServerLauncher
	queue    *eventQueue

	players     map[ids.PlayerId]*Player
	lobbies     map[ids.LobbyId]*Lobby
	gameServers map[ids.LobbyId]*GameServerHandle
	ports       *portPool

	exiting bool
	stats   atomic.Pointer[Stats]

	// shutdownWG lets Shutdown await outbound broadcast sends best-effort
	// before the loop drains (spec.md §4.3 "awaits those sends").
	shutdownWG sync.WaitGroup
}

// New constructs an Engine. launcher may be nil in tests that never reach
// LockChampSelection's every-member-locked transition. portMin/portMax is the
// inclusive range the loop allocates game-server ports from (spec.md §5).
func New(log logging.Logger, launcher GameServerLauncher, portMin, portMax int) *Engine {
	e := &Engine{
		log:         log,
		launcher:    launcher,
		queue:       newEventQueue(),
		players:     make(map[ids.PlayerId]*Player),
		lobbies:     make(map[ids.LobbyId]*Lobby),
		gameServers: make(map[ids.LobbyId]*GameServerHandle),
		ports:       newPortPool(portMin, portMax),
	}
	e.publishStats()
	return e
}

// Stats is a read-only snapshot published after every processed event, used
// by the read-only ops surface and the operator dashboard (SPEC_FULL.md §4).
// It never aliases live engine state.
type Stats struct {
	Lobbies       int
	Players       int
	InGameLobbies int
	ShuttingDown  bool
}

// Stats returns the most recent published snapshot. Safe for concurrent use
// from any goroutine; never touches the engine's owned maps.
func (e *Engine) Stats() Stats {
	if s := e.stats.Load(); s != nil {
		return *s
	}
	return Stats{}
}

func (e *Engine) publishStats() {
	s := Stats{ShuttingDown: e.exiting}
	for _, l := range e.lobbies {
		s.Lobbies++
		if l.Phase == protocol.LobbyStateInGame {
			s.InGameLobbies++
		}
	}
	s.Players = len(e.players)
	e.stats.Store(&s)
}

// LobbyShortInfos projects every known lobby the way GetLobbyList does,
// for the read-only ops surface (SPEC_FULL.md §4). Must be called only via
// a Callback posted onto the loop.
func (e *Engine) LobbyShortInfos() []protocol.LobbyShortInfo {
	out := make([]protocol.LobbyShortInfo, 0, len(e.lobbies))
	for _, l := range e.lobbies {
		out = append(out, protocol.LobbyShortInfo{
			ID:             l.ID,
			Name:           l.Settings.Name,
			PlayerCount:    l.MemberCount(),
			MaxPlayerCount: l.Settings.TeamCount * l.Settings.PlayerLimitPerTeam,
		})
	}
	return out
}
