package engine

import (
	"testing"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

func TestUpdateSettings_NoopWhenIdentical(t *testing.T) {
	h := newHarness(t)
	leader, leaderConn := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	var current protocol.LobbySettings
	h.inspect(func(e *Engine) {
		for _, l := range e.lobbies {
			current = l.Settings
		}
	})

	h.send(leader, protocol.UpdateSettings{Settings: current})

	if leaderConn.has("SettingsUpdated") {
		t.Fatal("expected no broadcast for an identical settings update")
	}
}

func TestUpdateSettings_RequiresLeader(t *testing.T) {
	h := newHarness(t)
	leader, _ := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	var lid ids.LobbyId
	h.inspect(func(e *Engine) {
		for id := range e.lobbies {
			lid = id
		}
	})

	other, otherConn := h.connect("Other")
	h.send(other, protocol.JoinLobby{Lobby: lid})

	s := defaultSettings()
	s.Name = "Renamed"
	h.send(other, protocol.UpdateSettings{Settings: s})

	if !otherConn.has("RequestRefused") {
		t.Fatal("expected refusal: only the leader may UpdateSettings")
	}
}

func TestUpdateSettings_RejectsEmptyNameUnknownMapAndZeroTeams(t *testing.T) {
	h := newHarness(t)
	leader, leaderConn := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	cases := []protocol.LobbySettings{
		{Name: "  ", Map: "Default", TeamCount: 2, PlayerLimitPerTeam: 5, LobbyIsOpen: true},
		{Name: "x", Map: "Nonexistent", TeamCount: 2, PlayerLimitPerTeam: 5, LobbyIsOpen: true},
		{Name: "x", Map: "Default", TeamCount: 0, PlayerLimitPerTeam: 5, LobbyIsOpen: true},
	}
	for _, s := range cases {
		h.send(leader, protocol.UpdateSettings{Settings: s})
	}
	if leaderConn.count("RequestRefused") != len(cases) {
		t.Fatalf("expected %d refusals, got %d", len(cases), leaderConn.count("RequestRefused"))
	}
}

// TestReshuffle_TeamCountShrink3To2 grounds spec.md §8's worked example:
// team_count 3->2 on teams [[A],[B,C],[D,E,F]] (limit unchanged at 5) must
// still be a valid two-team configuration after every displaced player is
// greedily replaced.
func TestReshuffle_TeamCountShrink3To2(t *testing.T) {
	h := newHarness(t)
	leader, _ := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	var lid ids.LobbyId
	var b, c, d, e2, f ids.PlayerId
	h.inspect(func(e *Engine) {
		for id := range e.lobbies {
			lid = id
		}
	})
	b, _ = h.connect("B")
	h.send(b, protocol.JoinLobby{Lobby: lid})
	c, _ = h.connect("C")
	h.send(c, protocol.JoinLobby{Lobby: lid})
	d, _ = h.connect("D")
	h.send(d, protocol.JoinLobby{Lobby: lid})
	e2, _ = h.connect("E")
	h.send(e2, protocol.JoinLobby{Lobby: lid})
	f, _ = h.connect("F")
	h.send(f, protocol.JoinLobby{Lobby: lid})

	// Arrange the exact starting shape [[A],[B,C],[D,E,F]] with team_count=3.
	h.inspect(func(e *Engine) {
		l := e.lobbies[lid]
		l.Settings.TeamCount = 3
		l.Teams = map[ids.Team][]ids.PlayerId{
			0: {leader},
			1: {b, c},
			2: {d, e2, f},
		}
	})

	s := defaultSettings()
	s.TeamCount = 2
	s.PlayerLimitPerTeam = 5
	h.send(leader, protocol.UpdateSettings{Settings: s})

	h.inspect(func(e *Engine) {
		l := e.lobbies[lid]
		if len(l.Teams) != 2 {
			t.Fatalf("expected exactly two teams, got %d", len(l.Teams))
		}
		total := 0
		for team, members := range l.Teams {
			total += len(members)
			if len(members) > s.PlayerLimitPerTeam {
				t.Errorf("team %d exceeds the limit: %v", team, members)
			}
		}
		if total != 6 {
			t.Errorf("expected all 6 players preserved across the reshuffle, got %d", total)
		}
	})
}

// TestReshuffle_PlayerLimitShrink5To2 grounds spec.md §8's second worked
// example exactly: [[A,B,C],[D]] with limit 5->2 displaces [C], which
// greedy-places into team 1, yielding [[A,B],[D,C]].
func TestReshuffle_PlayerLimitShrink5To2(t *testing.T) {
	h := newHarness(t)
	a, _ := h.connect("A")
	h.send(a, protocol.CreateLobby{})

	var lid ids.LobbyId
	h.inspect(func(e *Engine) {
		for id := range e.lobbies {
			lid = id
		}
	})
	b, _ := h.connect("B")
	h.send(b, protocol.JoinLobby{Lobby: lid})
	c, _ := h.connect("C")
	h.send(c, protocol.JoinLobby{Lobby: lid})
	d, _ := h.connect("D")
	h.send(d, protocol.JoinLobby{Lobby: lid})

	h.inspect(func(e *Engine) {
		l := e.lobbies[lid]
		l.Teams = map[ids.Team][]ids.PlayerId{
			0: {a, b, c},
			1: {d},
		}
	})

	s := defaultSettings()
	s.PlayerLimitPerTeam = 2
	h.send(a, protocol.UpdateSettings{Settings: s})

	h.inspect(func(e *Engine) {
		l := e.lobbies[lid]
		if len(l.Teams[0]) != 2 || l.Teams[0][0] != a || l.Teams[0][1] != b {
			t.Errorf("expected team 0 = [A,B], got %v", l.Teams[0])
		}
		if len(l.Teams[1]) != 2 || l.Teams[1][0] != d || l.Teams[1][1] != c {
			t.Errorf("expected team 1 = [D,C], got %v", l.Teams[1])
		}
	})
}
