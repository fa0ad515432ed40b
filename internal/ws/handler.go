package ws

import (
	"net/http"

	"github.com/coder/websocket"

	"github.com/Elekrisk/moba-try-5/internal/engine"
	"github.com/Elekrisk/moba-try-5/internal/logging"
)

// NewHandler builds the /ws upgrade endpoint (spec.md §4.1). Each accepted
// connection gets its own Session, run for the lifetime of the request.
func NewHandler(poster engine.EventPoster, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Printf("websocket accept failed: %v", err)
			return
		}
		sess := newSession(conn, poster, log)
		sess.run(r.Context())
	}
}
