// Package ids defines the opaque 128-bit identifiers shared across the
// lobby service: players, lobbies, and the tokens minted during the
// game-server handshake. All are backed by github.com/google/uuid; player
// and lobby ids serialize to the canonical hyphenated form spec.md requires
// on the wire, while tokens are handled as raw bytes.
package ids

import "github.com/google/uuid"

// PlayerId identifies a connected client for the lifetime of its connection.
type PlayerId uuid.UUID

// LobbyId identifies a lobby for the lifetime of its membership.
type LobbyId uuid.UUID

// Team is a small non-negative team index within a lobby.
type Team int

// NewPlayerId mints a fresh random player id.
func NewPlayerId() PlayerId {
	return PlayerId(uuid.New())
}

// NewLobbyId mints a fresh random lobby id.
func NewLobbyId() LobbyId {
	return LobbyId(uuid.New())
}

func (p PlayerId) String() string { return uuid.UUID(p).String() }
func (l LobbyId) String() string  { return uuid.UUID(l).String() }

func (p PlayerId) MarshalText() ([]byte, error) { return uuid.UUID(p).MarshalText() }
func (p *PlayerId) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*p = PlayerId(u)
	return nil
}

func (l LobbyId) MarshalText() ([]byte, error) { return uuid.UUID(l).MarshalText() }
func (l *LobbyId) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*l = LobbyId(u)
	return nil
}

// NewToken mints opaque token bytes, used as the lobby's bootstrap
// handshake token. Players' connect tokens are not minted here: they come
// from the game server's PlayerTokensGenerated reply.
func NewToken() []byte {
	u := uuid.New()
	return u[:]
}
