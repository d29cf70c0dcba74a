package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

func (rl *Relay) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	rr := relayws.RealRemote(r)
	if !rl.allowed(rr) {
		log.T.F("denying access to '%s'", rr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	var err error
	var conn *websocket.Conn
	if conn, err = rl.upgrader.Upgrade(w, r, nil); chk.E(err) {
		log.E.F("failed to upgrade websocket: %v", err)
		return
	}
	rl.clients.Store(conn, struct{}{})
	ws := relayws.New(conn, r)
	ws.WriteWait = rl.WriteWait
	log.T.Ln("inbound connection from", rr)
	s := rl.Open(ws)
	c, cancel := context.Cancel(rl.Ctx)
	ticker := time.NewTicker(rl.PingPeriod)
	var once sync.Once
	kill := func() {
		once.Do(func() {
			log.T.Ln("disconnecting websocket", rr)
			ticker.Stop()
			cancel()
			s.Disconnect()
			rl.clients.Delete(conn)
			chk.T(ws.Close())
		})
	}
	go rl.websocketReadMessages(readParams{c, kill, ws, s})
	go rl.websocketWatcher(watcherParams{c, kill, ticker, ws})
}
