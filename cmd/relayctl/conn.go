package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/fasthttp/websocket"
)

// relayConn is a client side websocket to one relay.
type relayConn struct {
	URL string
	*websocket.Conn
}

func validateRelayURL(wsurl string) (err error) {
	var u *url.URL
	if u, err = url.Parse(wsurl); err != nil {
		return fmt.Errorf("invalid relay url '%s': %s", wsurl, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("relay url must use wss:// or ws:// schemes, "+
			"got '%s'", wsurl)
	}
	if u.Host == "" {
		return fmt.Errorf("relay url '%s' is missing the hostname", wsurl)
	}
	return
}

func normalizeURL(u string) string {
	if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
		u = "wss://" + u
	}
	return u
}

func dial(c context.T, u string) (r *relayConn, err error) {
	u = normalizeURL(u)
	if err = validateRelayURL(u); err != nil {
		return
	}
	log.I.F("connecting to %s...", u)
	var conn *websocket.Conn
	if conn, _, err = websocket.DefaultDialer.DialContext(c, u,
		nil); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u, err)
	}
	return &relayConn{URL: u, Conn: conn}, nil
}

func (r *relayConn) Send(env enveloper.I) (err error) {
	log.T.F("-> %s %s", r.URL, env)
	return r.WriteMessage(websocket.TextMessage, env.Bytes())
}

// Receive reads the next message the relay sends.
func (r *relayConn) Receive() (env enveloper.I, err error) {
	var b []byte
	if _, b, err = r.ReadMessage(); err != nil {
		return
	}
	log.T.F("<- %s %s", r.URL, b)
	return envelopes.Parse(b)
}

func (r *relayConn) Close() {
	chk.T(r.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	chk.T(r.Conn.Close())
}

// Publish sends the event and waits for the relay's verdict on it. A NOTICE
// in place of the OK is returned as an error.
func (r *relayConn) Publish(ev *event.T) (ok *okenvelope.T, err error) {
	if err = r.Send(eventenvelope.New("", ev)); err != nil {
		return
	}
	for {
		var env enveloper.I
		if env, err = r.Receive(); err != nil {
			return
		}
		switch e := env.(type) {
		case *okenvelope.T:
			if e.ID == ev.ID {
				return e, nil
			}
		case *noticeenvelope.T:
			return nil, errors.New(e.Text)
		}
	}
}
