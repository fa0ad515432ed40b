package engine

import (
	"fmt"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// The guard chain of spec.md §4.3.1. Every MessageReceived handler runs its
// operation's guards in the order the spec table lists them; the first
// failure sends RequestRefused(reason) and stops with state unmodified.

func guardNotInLobby(p *Player) error {
	if p.CurrentLobby != nil {
		return refuse("You are already in a lobby.")
	}
	return nil
}

func (e *Engine) guardInLobby(p *Player) (*Lobby, error) {
	if p.CurrentLobby == nil {
		return nil, refuse("You are not in a lobby.")
	}
	l, ok := e.lobbies[*p.CurrentLobby]
	if !ok {
		return nil, refuse("You are not in a lobby.")
	}
	return l, nil
}

func (e *Engine) guardLobbyExists(id ids.LobbyId) (*Lobby, error) {
	l, ok := e.lobbies[id]
	if !ok {
		return nil, refuse("That lobby does not exist.")
	}
	return l, nil
}

func guardNormalState(l *Lobby) error {
	if l.Phase != protocol.LobbyStateNormal {
		return refuse("Lobby is in invalid state.")
	}
	return nil
}

func guardChampSelectState(l *Lobby) (*ChampSelectState, error) {
	if l.Phase != protocol.LobbyStateChampSelect || l.ChampSelect == nil {
		return nil, refuse("Lobby is in invalid state.")
	}
	return l.ChampSelect, nil
}

func guardIsLeader(l *Lobby, requester ids.PlayerId) error {
	if l.Leader != requester {
		return refuse("You are not the lobby leader.")
	}
	return nil
}

func guardLobbyOpen(l *Lobby) error {
	if !l.Settings.LobbyIsOpen {
		return refuse("The lobby is closed.")
	}
	return nil
}

func guardNotFull(l *Lobby) error {
	if l.MemberCount() >= l.Settings.TeamCount*l.Settings.PlayerLimitPerTeam {
		return refuse("The lobby is full")
	}
	return nil
}

func guardTeamExists(l *Lobby, t ids.Team) error {
	if t < 0 || int(t) >= l.Settings.TeamCount {
		return refuse(fmt.Sprintf("Team %d does not exist.", t))
	}
	return nil
}

func guardTeamNotFull(l *Lobby, t ids.Team) error {
	if len(l.Teams[t]) >= l.Settings.PlayerLimitPerTeam {
		return refuse(fmt.Sprintf("Team %d is full.", t))
	}
	return nil
}

// guardCanSwitchTeamOf implements spec.md's can_switch_team_of(target): the
// leader can always move themself or anyone else between teams, regardless
// of players_can_change_team; a non-leader may only move themself, and only
// when players_can_change_team is set.
func guardCanSwitchTeamOf(l *Lobby, requester, target ids.PlayerId) error {
	if target == requester {
		if l.Leader == requester {
			return nil
		}
		if !l.Settings.PlayersCanChangeTeam {
			return refuse("Team switching is disabled in this lobby.")
		}
		return nil
	}
	if l.Leader != requester {
		return refuse("Cannot switch team of other player.")
	}
	return nil
}
