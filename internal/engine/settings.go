package engine

import (
	"strings"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// opUpdateSettings implements spec.md §4.3.2 UpdateSettings, including the
// reshuffle algorithm it specifies.
func (e *Engine) opUpdateSettings(p *Player, msg protocol.UpdateSettings) error {
	l, err := e.guardInLobby(p)
	if err != nil {
		return err
	}
	if err := guardNormalState(l); err != nil {
		return err
	}
	if err := guardIsLeader(l, p.ID); err != nil {
		return err
	}

	new := msg.Settings
	if strings.TrimSpace(new.Name) == "" {
		return refuse("Lobby name must not be empty.")
	}
	if !isKnownMap(new.Map) {
		return refuse("Unknown map.")
	}
	if new.TeamCount < 1 {
		return refuse("A lobby must have at least one team.")
	}

	if new.Equal(l.Settings) {
		return nil
	}

	reshuffle(l, new)
	l.Settings = new

	e.broadcast(l, protocol.SettingsUpdated{Settings: new})
	return nil
}

// reshuffle applies spec.md §4.3.2's deterministic redistribution of
// displaced players when UpdateSettings shrinks team_count or
// player_limit_per_team. l.Settings still holds the OLD settings when this
// is called; new is what l.Settings will become.
func reshuffle(l *Lobby, new protocol.LobbySettings) {
	old := l.Settings
	var displaced []ids.PlayerId

	if new.TeamCount < old.TeamCount {
		for t := new.TeamCount; t < old.TeamCount; t++ {
			displaced = append(displaced, l.Teams[ids.Team(t)]...)
			delete(l.Teams, ids.Team(t))
		}
	} else if new.TeamCount > old.TeamCount {
		for t := old.TeamCount; t < new.TeamCount; t++ {
			if _, ok := l.Teams[ids.Team(t)]; !ok {
				l.Teams[ids.Team(t)] = []ids.PlayerId{}
			}
		}
	}

	limitShrunk := new.PlayerLimitPerTeam < old.PlayerLimitPerTeam
	overflow := false
	for t := 0; t < new.TeamCount; t++ {
		if len(l.Teams[ids.Team(t)]) > new.PlayerLimitPerTeam {
			overflow = true
			break
		}
	}
	if limitShrunk || overflow {
		for t := 0; t < new.TeamCount; t++ {
			members := l.Teams[ids.Team(t)]
			if len(members) > new.PlayerLimitPerTeam {
				displaced = append(displaced, members[new.PlayerLimitPerTeam:]...)
				l.Teams[ids.Team(t)] = append([]ids.PlayerId{}, members[:new.PlayerLimitPerTeam]...)
			}
		}
	}

	// Temporarily adopt the new team count/limit so smallestTeam() placement
	// below operates against the post-reshape shape.
	l.Settings = new
	for _, pid := range displaced {
		t := l.smallestTeam()
		l.Teams[t] = append(l.Teams[t], pid)
	}
	l.Settings = old
}
