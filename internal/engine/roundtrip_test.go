package engine

import (
	"reflect"
	"testing"

	"github.com/Elekrisk/moba-try-5/internal/ids"
	"github.com/Elekrisk/moba-try-5/internal/protocol"
)

// TestRoundTrip_JoinThenLeave grounds spec.md §8: "Join(L) then Leave
// returns the engine to a state equivalent to before (modulo lobby deletion
// if it was the sole member)."
func TestRoundTrip_JoinThenLeave(t *testing.T) {
	h := newHarness(t)
	leader, _ := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	var lid ids.LobbyId
	var before map[ids.Team][]ids.PlayerId
	h.inspect(func(e *Engine) {
		for id, l := range e.lobbies {
			lid = id
			before = cloneTeams(l.Teams)
		}
	})

	joiner, _ := h.connect("Joiner")
	h.send(joiner, protocol.JoinLobby{Lobby: lid})
	h.send(joiner, protocol.LeaveLobby{})

	h.inspect(func(e *Engine) {
		l, ok := e.lobbies[lid]
		if !ok {
			t.Fatal("lobby should still exist: leader remains a member")
		}
		if !reflect.DeepEqual(before, l.Teams) {
			t.Errorf("expected teams to return to %v, got %v", before, l.Teams)
		}
	})
}

func cloneTeams(teams map[ids.Team][]ids.PlayerId) map[ids.Team][]ids.PlayerId {
	out := make(map[ids.Team][]ids.PlayerId, len(teams))
	for t, members := range teams {
		out[t] = append([]ids.PlayerId{}, members...)
	}
	return out
}

// TestRoundTrip_SwitchPlacesTwiceIsIdentity grounds spec.md §8:
// "SwitchPlaces(a, b) twice is the identity."
func TestRoundTrip_SwitchPlacesTwiceIsIdentity(t *testing.T) {
	h := newHarness(t)
	leader, _ := h.connect("Leader")
	h.send(leader, protocol.CreateLobby{})

	var lid ids.LobbyId
	h.inspect(func(e *Engine) {
		for id := range e.lobbies {
			lid = id
		}
	})
	other, _ := h.connect("Other")
	h.send(other, protocol.JoinLobby{Lobby: lid})

	var before map[ids.Team][]ids.PlayerId
	h.inspect(func(e *Engine) {
		before = cloneTeams(e.lobbies[lid].Teams)
	})

	h.send(leader, protocol.SwitchPlaces{A: leader, B: other})
	h.send(leader, protocol.SwitchPlaces{A: leader, B: other})

	h.inspect(func(e *Engine) {
		if !reflect.DeepEqual(before, e.lobbies[lid].Teams) {
			t.Errorf("expected SwitchPlaces twice to be the identity, got %v (was %v)", e.lobbies[lid].Teams, before)
		}
	})
}
