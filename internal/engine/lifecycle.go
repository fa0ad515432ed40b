package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// playerLeftLobby is the shared routine of spec.md §4.3.3, invoked by
// LeaveLobby, KickPlayer, and ConnectionLost.
func (e *Engine) playerLeftLobby(pid ids.PlayerId) {
	p, ok := e.players[pid]
	if !ok || p.CurrentLobby == nil {
		return
	}
	lid := *p.CurrentLobby
	l, ok := e.lobbies[lid]
	if !ok {
		p.CurrentLobby = nil
		return
	}

	l.removeFromTeam(pid)
	if cs := l.ChampSelect; cs != nil {
		delete(cs.SelectedChamps, pid)
	}
	p.CurrentLobby = nil

	if l.MemberCount() == 0 {
		delete(e.lobbies, lid)
		if handle, ok := e.gameServers[lid]; ok {
			close(handle.Cancel)
		}
		return
	}

	wasLeader := l.Leader == pid
	if wasLeader {
		l.Leader = l.Members()[0]
		e.broadcast(l, protocol.LobbyLeaderChanged{Leader: l.Leader})
	}
	e.broadcast(l, protocol.PlayerLeftYourLobby{Player: pid})
}

// handleConnectionLost implements spec.md §4.3.4.
func (e *Engine) handleConnectionLost(ev ConnectionLost) {
	e.playerLeftLobby(ev.Player)
	delete(e.players, ev.Player)
}
