package main

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Elekrisk/moba-try-5/internal/engine"
)

// newRouter wires the websocket upgrade endpoint and the read-only
// observability surface SPEC_FULL.md §4 adds (/healthz, /lobbies).
func newRouter(wsHandler http.Handler, e *engine.Engine) *httprouter.Router {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/ws", wsHandler)
	router.GET("/healthz", serveHealthz(e))
	router.GET("/lobbies", serveLobbies(e))
	return router
}

func serveHealthz(e *engine.Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		stats := e.Stats()
		w.Header().Set("Content-Type", "application/json")
		if stats.ShuttingDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(stats)
	}
}

func serveLobbies(e *engine.Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		result := make(chan []byte, 1)
		e.Post(engine.Callback{Fn: func(e *engine.Engine) {
			infos := e.LobbyShortInfos()
			data, err := json.Marshal(infos)
			if err != nil {
				result <- []byte("[]")
				return
			}
			result <- data
		}})

		w.Header().Set("Content-Type", "application/json")
		w.Write(<-result)
	}
}
