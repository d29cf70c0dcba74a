package app

import (
	"strings"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayws"
)

type watcherParams struct {
	c    context.T
	kill func()
	t    *time.Ticker
	ws   *relayws.WebSocket
}

// websocketWatcher pings the client until the connection or the relay is
// done.
func (rl *Relay) websocketWatcher(p watcherParams) {
	var err error
	defer p.kill()
	for {
		select {
		case <-p.c.Done():
			return
		case <-p.t.C:
			if err = p.ws.Ping(); err != nil {
				if !strings.HasSuffix(err.Error(),
					"use of closed network connection") {
					log.T.F("error writing ping: %v; closing websocket", err)
				}
				return
			}
		}
	}
}
