package app

import (
	"net/http"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
	"github.com/fasthttp/websocket"
	"github.com/rs/cors"
)

// ServeHTTP implements http.Handler interface.
//
// Websocket upgrades become sessions, requests for the relay information
// document get it with permissive CORS, and anything else is told to upgrade.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if rl.Ctx.Err() != nil {
		log.W.Ln("shutting down")
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	switch {
	case websocket.IsWebSocketUpgrade(r):
		rl.HandleWebsocket(w, r)
	case strings.Contains(r.Header.Get("Accept"), relayinfo.MIME):
		cors.AllowAll().Handler(http.HandlerFunc(rl.HandleNIP11)).
			ServeHTTP(w, r)
	default:
		rl.serveMux.ServeHTTP(w, r)
	}
}

// HandleUpgradeRequired answers plain HTTP requests.
func (rl *Relay) HandleUpgradeRequired(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Upgrade", "websocket")
	http.Error(w, "Expected Upgrade: websocket", http.StatusUpgradeRequired)
}
