package server

import (
	"encoding/json"
	"net/http"

	"LaneRally/internal/game"

	"github.com/decred/slog"
)

/* ------------------------------- HTTP ------------------------------- */

func buildMux(reg *game.Registry, log slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(reg, log, w, r)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/debug/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(reg.Snapshot()); err != nil {
			log.Debugf("debug/rooms encode: %v", err)
		}
	})
	return mux
}
