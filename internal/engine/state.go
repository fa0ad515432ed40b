// Package engine implements the lobby service's single-threaded
// authoritative state engine: the event loop, the lobby lifecycle state
// machine, the request-validation and broadcast protocol, and the shared
// routines the game-server supervisor calls back into (spec.md §3, §4.3).
//
// Adapted from the teacher's LobbyManager/LobbyServer pair
// (cmd/server/lobby_manager.go, cmd/server/lobby_server.go), which guarded
// an equivalent players/settings model with sync.RWMutex. Here a single
// event loop owns every map instead — no locks are needed because nothing
// outside this package ever touches them (spec.md §3 Ownership).
package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// Sender delivers a message to one connected client. Implementations queue
// the send to a detached writer task and must never block the caller
// (spec.md §4.3 handling contract). The returned channel closes once the
// write has been attempted (successfully or not), letting Shutdown await
// completion of its broadcast (spec.md §4.3) without the loop itself
// blocking on I/O.
type Sender interface {
	Send(msg protocol.MessageFromServer) (done <-chan struct{})
	// SendRaw delivers an already-encoded envelope, used by broadcast so the
	// payload is serialized once and the bytes are shared across every
	// recipient's writer task (spec.md §9 broadcast-cost note).
	SendRaw(data []byte) (done <-chan struct{})
}

// Player is a connected client (spec.md §3).
type Player struct {
	ID           ids.PlayerId
	DisplayName  string
	CurrentLobby *ids.LobbyId
	Conn         Sender
}

// ChampSelectState is the per-lobby champion-select phase data (spec.md §3).
type ChampSelectState struct {
	AvailableChamps []string
	SelectedChamps  map[ids.PlayerId]*protocol.ChampionSelection
}

// Lobby is a named group of players progressing through Normal -> ChampSelect
// -> InGame (spec.md §3, §9: a tagged sum on Phase, never nullable flags).
type Lobby struct {
	ID       ids.LobbyId
	Settings protocol.LobbySettings
	Leader   ids.PlayerId
	Teams    map[ids.Team][]ids.PlayerId
	Phase    protocol.LobbyState
	// ChampSelect is non-nil iff Phase == LobbyStateChampSelect.
	ChampSelect *ChampSelectState
}

// MemberCount returns the total number of players across all teams.
func (l *Lobby) MemberCount() int {
	n := 0
	for _, team := range l.Teams {
		n += len(team)
	}
	return n
}

// Members returns every player id in the lobby, in team-ascending,
// intra-team order (the order spec.md's leader-promotion rule uses).
func (l *Lobby) Members() []ids.PlayerId {
	out := make([]ids.PlayerId, 0, l.MemberCount())
	for t := 0; t < l.Settings.TeamCount; t++ {
		out = append(out, l.Teams[ids.Team(t)]...)
	}
	return out
}

// teamOf returns the team a player currently occupies, and whether they were
// found at all.
func (l *Lobby) teamOf(p ids.PlayerId) (ids.Team, bool) {
	for t, members := range l.Teams {
		for _, m := range members {
			if m == p {
				return t, true
			}
		}
	}
	return 0, false
}

// removeFromTeam removes p from whichever team holds it, preserving the
// order of the remaining members (spec.md §4.3.3).
func (l *Lobby) removeFromTeam(p ids.PlayerId) {
	for t, members := range l.Teams {
		for i, m := range members {
			if m == p {
				l.Teams[t] = append(members[:i], members[i+1:]...)
				return
			}
		}
	}
}

// smallestTeam returns the team index with the fewest members, ties broken
// by lowest index (spec.md §4.3.2 JoinLobby / §4.3.2 reshuffle).
func (l *Lobby) smallestTeam() ids.Team {
	best := ids.Team(0)
	bestSize := -1
	for t := 0; t < l.Settings.TeamCount; t++ {
		size := len(l.Teams[ids.Team(t)])
		if bestSize == -1 || size < bestSize {
			bestSize = size
			best = ids.Team(t)
		}
	}
	return best
}

// GameServerHandle tracks the supervisor state for a lobby that has started
// a match (spec.md §3). The loop holds only the cancel-send half; the
// supervisor task owns the process and the cancel-receive half
// (spec.md §9 Supervisor lifetime).
type GameServerHandle struct {
	LobbyID ids.LobbyId
	Port    int
	Cancel  chan struct{}
}
