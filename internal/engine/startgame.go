package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// startGame implements spec.md §4.4: triggered once every member of a
// lobby's champ-select has a locked selection. Preconditions (lobby exists,
// ChampSelect state, every member selected) are already guaranteed by the
// caller (opLockChampSelection). The port is allocated here from the
// engine-owned pool; an exhausted pool or a false ok from Launch is treated
// identically to a bootstrap failure (spec.md §7 Child-process errors).
func (e *Engine) startGame(l *Lobby) {
	players := make(map[ids.Team][]protocol.LobbyPlayer, len(l.Teams))
	for t, members := range l.Teams {
		for _, pid := range members {
			p := e.players[pid]
			if p == nil {
				continue
			}
			var champ string
			if sel := l.ChampSelect.SelectedChamps[pid]; sel != nil {
				champ = sel.Champion
			}
			players[t] = append(players[t], protocol.LobbyPlayer{
				Player: protocol.PlayerInfo{
					ID:           p.ID,
					DisplayName:  p.DisplayName,
					CurrentLobby: p.CurrentLobby,
				},
				Champion: champ,
			})
		}
	}

	l.Phase = protocol.LobbyStateInGame
	l.ChampSelect = nil

	if e.launcher == nil {
		e.failStartGame(l.ID)
		return
	}

	port, ok := e.ports.allocate()
	if !ok {
		e.failStartGame(l.ID)
		return
	}

	cancel, ok := e.launcher.Launch(StartGameRequest{
		LobbyID: l.ID,
		Players: players,
		Poster:  e,
	}, port)
	if !ok {
		e.ports.release(port)
		e.failStartGame(l.ID)
		return
	}
	e.gameServers[l.ID] = &GameServerHandle{LobbyID: l.ID, Port: port, Cancel: cancel}
}

// failStartGame handles a launch that failed synchronously (e.g. no free
// port) exactly like an asynchronous bootstrap failure: refuse the lobby and
// forcibly empty it (spec.md §4.4 step 4 "Bootstrap error").
func (e *Engine) failStartGame(lid ids.LobbyId) {
	l, ok := e.lobbies[lid]
	if !ok {
		return
	}
	e.broadcast(l, protocol.RequestRefused{Reason: "Failed to start game server"})
	for _, pid := range append([]ids.PlayerId{}, l.Members()...) {
		e.playerLeftLobby(pid)
	}
}

// GameStarted delivers each player's connect token once the supervisor's
// bootstrap handshake completes (spec.md §4.4 step 4 "Reply received").
// Called only from a Callback posted by the supervisor.
func (e *Engine) GameStarted(lid ids.LobbyId, tokens map[ids.PlayerId][]byte) {
	for pid, token := range tokens {
		if p, ok := e.players[pid]; ok {
			e.send(p, protocol.GameStarted{Token: token})
		}
	}
}

// FailGameServer is the Callback the supervisor posts on bootstrap error or a
// non-zero game-server exit: it refuses the lobby and forcibly empties it
// (spec.md §4.4 step 4, §7.3 "non-zero exit").
func (e *Engine) FailGameServer(lid ids.LobbyId) {
	e.failStartGame(lid)
}

// CompleteGameServer is the Callback the supervisor posts when the game
// server exits cleanly (zero status) after a match was already under way: the
// match ended normally, so every member is just sent home, with no
// RequestRefused (spec.md §7.3 "clean exit").
func (e *Engine) CompleteGameServer(lid ids.LobbyId) {
	l, ok := e.lobbies[lid]
	if !ok {
		return
	}
	for _, pid := range append([]ids.PlayerId{}, l.Members()...) {
		if p, ok := e.players[pid]; ok {
			e.send(p, protocol.YouLeftLobby{})
		}
		e.playerLeftLobby(pid)
	}
}

// ReleaseGameServer removes lid's handle and frees its port back to the pool
// (spec.md §4.4 step 5, §5 "Port pool: mutated only by the loop"). Called
// from every termination path the supervisor reports.
func (e *Engine) ReleaseGameServer(lid ids.LobbyId) {
	if h, ok := e.gameServers[lid]; ok {
		e.ports.release(h.Port)
		delete(e.gameServers, lid)
	}
}
