package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// snapshotLobby projects a Lobby into its wire representation for
// GetLobbyInfo (spec.md §4.3.2).
func (e *Engine) snapshotLobby(l *Lobby) protocol.Lobby {
	teams := make(map[ids.Team][]ids.PlayerId, len(l.Teams))
	for t, members := range l.Teams {
		teams[t] = append([]ids.PlayerId{}, members...)
	}

	out := protocol.Lobby{
		ID:       l.ID,
		Settings: l.Settings,
		Leader:   l.Leader,
		Players:  teams,
		State:    l.Phase,
	}
	if l.ChampSelect != nil {
		selected := make(map[ids.PlayerId]*protocol.ChampionSelection, len(l.ChampSelect.SelectedChamps))
		for pid, sel := range l.ChampSelect.SelectedChamps {
			if sel == nil {
				selected[pid] = nil
				continue
			}
			copySel := *sel
			selected[pid] = &copySel
		}
		out.ChampSelect = &protocol.ChampSelectSnapshot{
			AvailableChamps: append([]string{}, l.ChampSelect.AvailableChamps...),
			SelectedChamps:  selected,
		}
	}
	return out
}
