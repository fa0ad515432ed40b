package engine

import (
	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

func (e *Engine) handleMessageReceived(ev MessageReceived) {
	p, ok := e.players[ev.Player]
	if !ok {
		return
	}

	var err error
	switch msg := ev.Message.(type) {
	case protocol.CreateLobby:
		err = e.opCreateLobby(p)
	case protocol.JoinLobby:
		err = e.opJoinLobby(p, msg)
	case protocol.LeaveLobby:
		err = e.opLeaveLobby(p)
	case protocol.SwitchTeam:
		err = e.opSwitchTeam(p, msg)
	case protocol.SwitchPlaces:
		err = e.opSwitchPlaces(p, msg)
	case protocol.GetLobbyInfo:
		err = e.opGetLobbyInfo(p, msg)
	case protocol.GetLobbyList:
		e.opGetLobbyList(p)
	case protocol.GetPlayerInfo:
		e.opGetPlayerInfo(p, msg)
	case protocol.KickPlayer:
		err = e.opKickPlayer(p, msg)
	case protocol.UpdateSettings:
		err = e.opUpdateSettings(p, msg)
	case protocol.EnterChampSelect:
		err = e.opEnterChampSelect(p)
	case protocol.SelectChampion:
		err = e.opSelectChampion(p, msg)
	case protocol.LockChampSelection:
		err = e.opLockChampSelection(p)
	case protocol.StartGame:
		err = refuse("Use LockChampSelection to start the game.")
	case protocol.Disconnecting:
		// Synthesize ConnectionLost for next turn (spec.md §4.3.2).
		e.Post(ConnectionLost{Player: p.ID})
	default:
		e.log.Printf("unhandled message type %T from %s", ev.Message, p.ID)
	}

	if err != nil {
		if reason, ok := refusalReason(err); ok {
			e.send(p, protocol.RequestRefused{Reason: reason})
		} else {
			e.log.Printf("operation error for %s: %v", p.ID, err)
		}
	}
}

// opCreateLobby implements spec.md §4.3.2 CreateLobby.
func (e *Engine) opCreateLobby(p *Player) error {
	if err := guardNotInLobby(p); err != nil {
		return err
	}

	lid := ids.NewLobbyId()
	l := &Lobby{
		ID: lid,
		Settings: protocol.LobbySettings{
			Name:                 p.DisplayName + "'s Lobby",
			Map:                  "Default",
			TeamCount:            2,
			PlayerLimitPerTeam:   5,
			PlayersCanChangeTeam: true,
			LobbyIsOpen:          true,
		},
		Leader: p.ID,
		Teams:  map[ids.Team][]ids.PlayerId{0: {p.ID}, 1: {}},
		Phase:  protocol.LobbyStateNormal,
	}
	e.lobbies[lid] = l
	p.CurrentLobby = &lid

	e.send(p, protocol.YouJoinedLobby{Lobby: lid})
	e.broadcast(l, protocol.PlayerJoinedYourLobby{Player: p.ID}, p.ID)
	return nil
}

// opJoinLobby implements spec.md §4.3.2 JoinLobby.
func (e *Engine) opJoinLobby(p *Player, msg protocol.JoinLobby) error {
	if err := guardNotInLobby(p); err != nil {
		return err
	}
	l, err := e.guardLobbyExists(msg.Lobby)
	if err != nil {
		return err
	}
	if err := guardNormalState(l); err != nil {
		return err
	}
	if err := guardLobbyOpen(l); err != nil {
		return err
	}
	if err := guardNotFull(l); err != nil {
		return err
	}

	t := l.smallestTeam()
	l.Teams[t] = append(l.Teams[t], p.ID)
	lid := l.ID
	p.CurrentLobby = &lid

	e.send(p, protocol.YouJoinedLobby{Lobby: l.ID})
	e.broadcast(l, protocol.PlayerJoinedYourLobby{Player: p.ID}, p.ID)
	return nil
}

// opLeaveLobby implements spec.md §4.3.2 LeaveLobby.
func (e *Engine) opLeaveLobby(p *Player) error {
	e.send(p, protocol.YouLeftLobby{})
	e.playerLeftLobby(p.ID)
	return nil
}

// opSwitchTeam implements spec.md §4.3.2 SwitchTeam.
func (e *Engine) opSwitchTeam(p *Player, msg protocol.SwitchTeam) error {
	l, err := e.guardInLobby(p)
	if err != nil {
		return err
	}
	if err := guardNormalState(l); err != nil {
		return err
	}
	if err := guardCanSwitchTeamOf(l, p.ID, msg.Target); err != nil {
		return err
	}
	if err := guardTeamExists(l, msg.Team); err != nil {
		return err
	}
	if err := guardTeamNotFull(l, msg.Team); err != nil {
		return err
	}
	if _, found := l.teamOf(msg.Target); !found {
		return refuse("Player does not exist")
	}

	l.removeFromTeam(msg.Target)
	l.Teams[msg.Team] = append(l.Teams[msg.Team], msg.Target)

	e.broadcast(l, protocol.PlayerSwitchedTeam{Player: msg.Target, Team: msg.Team})
	return nil
}

// opSwitchPlaces implements spec.md §4.3.2 SwitchPlaces.
func (e *Engine) opSwitchPlaces(p *Player, msg protocol.SwitchPlaces) error {
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

	ta, foundA := l.teamOf(msg.A)
	tb, foundB := l.teamOf(msg.B)
	if !foundA || !foundB {
		return refuse("Player does not exist")
	}
	if msg.A == msg.B {
		return nil
	}

	ia := indexOf(l.Teams[ta], msg.A)
	ib := indexOf(l.Teams[tb], msg.B)
	l.Teams[ta][ia] = msg.B
	l.Teams[tb][ib] = msg.A

	e.broadcast(l, protocol.PlayersSwitched{A: msg.A, B: msg.B})
	return nil
}

func indexOf(s []ids.PlayerId, v ids.PlayerId) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// opGetLobbyInfo implements spec.md §4.3.2 GetLobbyInfo.
func (e *Engine) opGetLobbyInfo(p *Player, msg protocol.GetLobbyInfo) error {
	l, err := e.guardLobbyExists(msg.Lobby)
	if err != nil {
		return err
	}
	e.send(p, protocol.LobbyInfo{Lobby: e.snapshotLobby(l)})
	return nil
}

// opGetLobbyList implements spec.md §4.3.2 GetLobbyList.
func (e *Engine) opGetLobbyList(p *Player) {
	e.send(p, protocol.LobbyList{Lobbies: e.LobbyShortInfos()})
}

// opGetPlayerInfo implements spec.md §4.3.2 GetPlayerInfo (silent drop on
// unknown id, spec.md §9a).
func (e *Engine) opGetPlayerInfo(p *Player, msg protocol.GetPlayerInfo) {
	target, ok := e.players[msg.Player]
	if !ok {
		return
	}
	e.send(p, protocol.PlayerInfoMsg{Player: protocol.PlayerInfo{
		ID:           target.ID,
		DisplayName:  target.DisplayName,
		CurrentLobby: target.CurrentLobby,
	}})
}

// opKickPlayer implements spec.md §4.3.2 KickPlayer.
func (e *Engine) opKickPlayer(p *Player, msg protocol.KickPlayer) error {
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

	target, ok := e.players[msg.Target]
	if !ok {
		return refuse("Player does not exist")
	}
	e.send(target, protocol.YouLeftLobby{})
	e.playerLeftLobby(target.ID)
	return nil
}

// opEnterChampSelect implements spec.md §4.3.2 EnterChampSelect.
func (e *Engine) opEnterChampSelect(p *Player) error {
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

	selected := make(map[ids.PlayerId]*protocol.ChampionSelection, l.MemberCount())
	for _, m := range l.Members() {
		selected[m] = nil
	}
	l.ChampSelect = &ChampSelectState{
		AvailableChamps: championCatalog(),
		SelectedChamps:  selected,
	}
	l.Phase = protocol.LobbyStateChampSelect

	e.broadcast(l, protocol.ChampSelectEntered{})
	return nil
}

// opSelectChampion implements spec.md §4.3.2 SelectChampion.
func (e *Engine) opSelectChampion(p *Player, msg protocol.SelectChampion) error {
	l, err := e.guardInLobby(p)
	if err != nil {
		return err
	}
	cs, err := guardChampSelectState(l)
	if err != nil {
		return err
	}

	if cur := cs.SelectedChamps[p.ID]; cur != nil && cur.Locked {
		return refuse("You cannot change locked selection.")
	}
	if !containsString(cs.AvailableChamps, msg.Champion) {
		return refuse("That champion does not exist.")
	}

	cs.SelectedChamps[p.ID] = &protocol.ChampionSelection{Champion: msg.Champion, Locked: false}
	e.broadcast(l, protocol.PlayerSelectedChampion{Player: p.ID, Champion: msg.Champion})
	return nil
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// opLockChampSelection implements spec.md §4.3.2 LockChampSelection,
// including the every-member-locked transition into start-game.
func (e *Engine) opLockChampSelection(p *Player) error {
	l, err := e.guardInLobby(p)
	if err != nil {
		return err
	}
	cs, err := guardChampSelectState(l)
	if err != nil {
		return err
	}

	sel := cs.SelectedChamps[p.ID]
	if sel == nil {
		return refuse("You must select a champion before locking in.")
	}
	sel.Locked = true
	e.broadcast(l, protocol.ChampSelectionLocked{Player: p.ID})

	for _, s := range cs.SelectedChamps {
		if s == nil || !s.Locked {
			return nil
		}
	}
	e.startGame(l)
	return nil
}
