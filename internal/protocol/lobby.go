package protocol

import "github.com/Elekrisk/moba-try-5/internal/ids"

// LobbyState is the discriminant of a lobby's lifecycle phase (spec.md §3,
// §9: modeled as a tagged sum rather than nullable flags).
type LobbyState string

const (
	LobbyStateNormal      LobbyState = "normal"
	LobbyStateChampSelect LobbyState = "champSelect"
	LobbyStateInGame      LobbyState = "inGame"
)

// LobbySettings is the mutable configuration of a lobby (spec.md §3).
type LobbySettings struct {
	Name                 string `json:"name"`
	Map                  string `json:"map"`
	TeamCount            int    `json:"teamCount"`
	PlayerLimitPerTeam   int    `json:"playerLimitPerTeam"`
	PlayersCanChangeTeam bool   `json:"playersCanChangeTeam"`
	LobbyIsOpen          bool   `json:"lobbyIsOpen"`
}

// Equal reports whether two settings values are identical, used by
// UpdateSettings to detect the no-op case (spec.md §4.3.2).
func (s LobbySettings) Equal(o LobbySettings) bool {
	return s == o
}

// ChampionSelection is a single player's in-progress or locked pick.
type ChampionSelection struct {
	Champion string `json:"champion"`
	Locked   bool   `json:"locked"`
}

// ChampSelectSnapshot mirrors engine.ChampSelectState for the wire.
type ChampSelectSnapshot struct {
	AvailableChamps []string                            `json:"availableChamps"`
	SelectedChamps  map[ids.PlayerId]*ChampionSelection `json:"selectedChamps"`
}

// Lobby is the full snapshot of a lobby sent in response to GetLobbyInfo.
type Lobby struct {
	ID          ids.LobbyId                 `json:"id"`
	Settings    LobbySettings               `json:"settings"`
	Leader      ids.PlayerId                `json:"leader"`
	Players     map[ids.Team][]ids.PlayerId `json:"players"`
	State       LobbyState                  `json:"state"`
	ChampSelect *ChampSelectSnapshot        `json:"champSelect,omitempty"`
}

// LobbyShortInfo is the projection used by the lobby list and the read-only
// ops surface (SPEC_FULL.md §4).
type LobbyShortInfo struct {
	ID             ids.LobbyId `json:"id"`
	Name           string      `json:"name"`
	PlayerCount    int         `json:"playerCount"`
	MaxPlayerCount int         `json:"maxPlayerCount"`
}

// PlayerInfo is the snapshot sent in response to GetPlayerInfo.
type PlayerInfo struct {
	ID           ids.PlayerId `json:"id"`
	DisplayName  string       `json:"displayName"`
	CurrentLobby *ids.LobbyId `json:"currentLobby,omitempty"`
}
