package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the externally-tagged wire shape shared by both message
// catalogs, generalizing the teacher's IntentEnvelope (client→server) and
// PatchEnvelope (server→client) into one shape used in both directions
// (internal/protocol/intent.go, internal/protocol/patch.go in the teacher).
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeFromPlayer serializes a client→server message to its wire envelope.
func EncodeFromPlayer(msg MessageFromPlayer) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Envelope{Type: msg.messageFromPlayerTag(), Payload: payload})
}

// DecodeFromPlayer parses a wire envelope into one of the MessageFromPlayer
// variants. Unknown types are a decode error, handled by the session task as
// a malformed message (spec.md §4.2: any read/parse failure -> ConnectionLost).
func DecodeFromPlayer(data []byte) (MessageFromPlayer, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var msg MessageFromPlayer
	switch env.Type {
	case "InitialHandshake":
		msg = &InitialHandshake{}
	case "CreateLobby":
		msg = &CreateLobby{}
	case "JoinLobby":
		msg = &JoinLobby{}
	case "LeaveLobby":
		msg = &LeaveLobby{}
	case "SwitchTeam":
		msg = &SwitchTeam{}
	case "SwitchPlaces":
		msg = &SwitchPlaces{}
	case "GetLobbyInfo":
		msg = &GetLobbyInfo{}
	case "GetLobbyList":
		msg = &GetLobbyList{}
	case "GetPlayerInfo":
		msg = &GetPlayerInfo{}
	case "KickPlayer":
		msg = &KickPlayer{}
	case "UpdateSettings":
		msg = &UpdateSettings{}
	case "EnterChampSelect":
		msg = &EnterChampSelect{}
	case "SelectChampion":
		msg = &SelectChampion{}
	case "LockChampSelection":
		msg = &LockChampSelection{}
	case "StartGame":
		msg = &StartGame{}
	case "Disconnecting":
		msg = &Disconnecting{}
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}

	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, msg); err != nil {
			return nil, fmt.Errorf("decode payload for %q: %w", env.Type, err)
		}
	}

	return derefMessageFromPlayer(msg), nil
}

// derefMessageFromPlayer turns the pointer variants used for unmarshaling
// back into the value variants the rest of the engine switches on.
func derefMessageFromPlayer(msg MessageFromPlayer) MessageFromPlayer {
	switch m := msg.(type) {
	case *InitialHandshake:
		return *m
	case *CreateLobby:
		return *m
	case *JoinLobby:
		return *m
	case *LeaveLobby:
		return *m
	case *SwitchTeam:
		return *m
	case *SwitchPlaces:
		return *m
	case *GetLobbyInfo:
		return *m
	case *GetLobbyList:
		return *m
	case *GetPlayerInfo:
		return *m
	case *KickPlayer:
		return *m
	case *UpdateSettings:
		return *m
	case *EnterChampSelect:
		return *m
	case *SelectChampion:
		return *m
	case *LockChampSelection:
		return *m
	case *StartGame:
		return *m
	case *Disconnecting:
		return *m
	default:
		return msg
	}
}

// EncodeFromServer serializes a server→client message to its wire envelope.
// The caller (engine.broadcast) encodes once and shares the resulting
// bytes across every recipient (spec.md §9 broadcast-cost note).
func EncodeFromServer(msg MessageFromServer) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Envelope{Type: msg.messageFromServerTag(), Payload: payload})
}
