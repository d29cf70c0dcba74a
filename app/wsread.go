package app

import (
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayws"
	"github.com/fasthttp/websocket"
)

type readParams struct {
	c    context.T
	kill func()
	ws   *relayws.WebSocket
	s    *Session
}

// websocketReadMessages feeds every text message from the connection to the
// session until the connection fails. It never processes messages itself.
func (rl *Relay) websocketReadMessages(p readParams) {
	defer p.kill()
	conn := p.ws.Conn
	conn.SetReadLimit(rl.MaxMessageSize)
	chk.E(conn.SetReadDeadline(time.Now().Add(rl.PongWait)))
	conn.SetPongHandler(func(string) (err error) {
		err = conn.SetReadDeadline(time.Now().Add(rl.PongWait))
		chk.E(err)
		return
	})
	for {
		var err error
		var typ int
		var message []byte
		if typ, message, err = conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,    // 1000
				websocket.CloseGoingAway,        // 1001
				websocket.CloseNoStatusReceived, // 1005
				websocket.CloseAbnormalClosure,  // 1006
			) {
				log.E.F("unexpected close error from %s: %v",
					p.ws.RealRemote(), err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		log.T.F("receiving message from %s: %s", p.ws.RealRemote(),
			string(message))
		if !p.s.Receive(message) {
			return
		}
		if p.c.Err() != nil {
			return
		}
	}
}
