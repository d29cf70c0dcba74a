package app

import (
	"encoding/json"
	"net/http"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
)

func (rl *Relay) HandleNIP11(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", relayinfo.MIME)
	chk.E(json.NewEncoder(w).Encode(rl.Info))
}
