package protocol

import "github.com/Elekrisk/moba-try-5/internal/ids"

// MessageFromServer is the server→client wire catalog of spec.md §6.1.
type MessageFromServer interface {
	messageFromServerTag() string
}

type InitialHandshakeResponse struct {
	ID ids.PlayerId `json:"id"`
}

type YouJoinedLobby struct {
	Lobby ids.LobbyId `json:"lobby"`
}

type YouLeftLobby struct{}

type PlayerJoinedYourLobby struct {
	Player ids.PlayerId `json:"player"`
}

type PlayerLeftYourLobby struct {
	Player ids.PlayerId `json:"player"`
}

type PlayerSwitchedTeam struct {
	Player ids.PlayerId `json:"player"`
	Team   ids.Team     `json:"team"`
}

type PlayersSwitched struct {
	A ids.PlayerId `json:"a"`
	B ids.PlayerId `json:"b"`
}

type LobbyInfo struct {
	Lobby Lobby `json:"lobby"`
}

type LobbyList struct {
	Lobbies []LobbyShortInfo `json:"lobbies"`
}

type PlayerInfoMsg struct {
	Player PlayerInfo `json:"player"`
}

type LobbyLeaderChanged struct {
	Leader ids.PlayerId `json:"leader"`
}

type RequestRefused struct {
	Reason string `json:"reason"`
}

type SettingsUpdated struct {
	Settings LobbySettings `json:"settings"`
}

type ChampSelectEntered struct{}

type PlayerSelectedChampion struct {
	Player   ids.PlayerId `json:"player"`
	Champion string       `json:"champion"`
}

type ChampSelectionLocked struct {
	Player ids.PlayerId `json:"player"`
}

type GameStarted struct {
	Token []byte `json:"token"`
}

type ServerShutdown struct{}

func (InitialHandshakeResponse) messageFromServerTag() string { return "InitialHandshakeResponse" }
func (YouJoinedLobby) messageFromServerTag() string           { return "YouJoinedLobby" }
func (YouLeftLobby) messageFromServerTag() string             { return "YouLeftLobby" }
func (PlayerJoinedYourLobby) messageFromServerTag() string    { return "PlayerJoinedYourLobby" }
func (PlayerLeftYourLobby) messageFromServerTag() string      { return "PlayerLeftYourLobby" }
func (PlayerSwitchedTeam) messageFromServerTag() string       { return "PlayerSwitchedTeam" }
func (PlayersSwitched) messageFromServerTag() string          { return "PlayersSwitched" }
func (LobbyInfo) messageFromServerTag() string                { return "LobbyInfo" }
func (LobbyList) messageFromServerTag() string                { return "LobbyList" }
func (PlayerInfoMsg) messageFromServerTag() string            { return "PlayerInfo" }
func (LobbyLeaderChanged) messageFromServerTag() string       { return "LobbyLeaderChanged" }
func (RequestRefused) messageFromServerTag() string           { return "RequestRefused" }
func (SettingsUpdated) messageFromServerTag() string          { return "SettingsUpdated" }
func (ChampSelectEntered) messageFromServerTag() string       { return "ChampSelectEntered" }
func (PlayerSelectedChampion) messageFromServerTag() string   { return "PlayerSelectedChampion" }
func (ChampSelectionLocked) messageFromServerTag() string     { return "ChampSelectionLocked" }
func (GameStarted) messageFromServerTag() string              { return "GameStarted" }
func (ServerShutdown) messageFromServerTag() string           { return "ServerShutdown" }
