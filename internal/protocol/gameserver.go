package protocol

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Elekrisk/moba-try-5/internal/ids"
)

// LobbyPlayer is one member of a team as handed to the game server at
// bootstrap (spec.md §6.2).
type LobbyPlayer struct {
	Player   PlayerInfo `json:"player"`
	Champion string     `json:"champion"`
}

// LobbyInitialMessage is the lobby→game-server bootstrap message.
type LobbyInitialMessage struct {
	Token   []byte                        `json:"token"`
	Players map[ids.Team][]LobbyPlayer    `json:"players"`
}

// PlayerTokensGenerated is the game-server→lobby bootstrap reply.
type PlayerTokensGenerated struct {
	Players map[ids.PlayerId][]byte `json:"players"`
}

// WriteFramed writes a length-prefixed (u32 big-endian) JSON message to w,
// the framing spec.md §4.2/§6.2 mandates for the lobby↔game-server link (as
// opposed to the one-message-per-substream client link).
func WriteFramed(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal framed message: %w", err)
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write frame body: %w", err)
	}
	return nil
}

// ReadFramed reads one length-prefixed JSON message from r into v.
func ReadFramed(r *bufio.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("read frame header: %w", err)
	}
	size := binary.BigEndian.Uint32(header[:])
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("read frame body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal framed message: %w", err)
	}
	return nil
}
