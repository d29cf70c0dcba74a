// Package relayws wraps a server side websocket connection with a write lock
// and write deadlines.
package relayws

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/fasthttp/websocket"
	"github.com/sebest/xff"
)

var log, chk = slog.New(os.Stderr)

// DefaultWriteWait is the time allowed to write a message to the peer.
const DefaultWriteWait = 10 * time.Second

// WebSocket is a wrapper around a fasthttp/websocket with mutex locking.
type WebSocket struct {
	Conn      *websocket.Conn
	Request   *http.Request // original request
	WriteWait time.Duration
	remote    string
	mutex     sync.Mutex
}

// New wraps a freshly upgraded connection. The remote address is taken from
// X-Forwarded-For when a trusted proxy set it.
func New(conn *websocket.Conn, r *http.Request) (ws *WebSocket) {
	ws = &WebSocket{Conn: conn, Request: r, WriteWait: DefaultWriteWait}
	ws.remote = RealRemote(r)
	return
}

// RealRemote returns the client address of a request, honouring
// X-Forwarded-For from private proxies.
func RealRemote(r *http.Request) (remote string) {
	if r == nil {
		return ""
	}
	if remote = xff.GetRemoteAddr(r); remote == "" {
		remote = r.RemoteAddr
	}
	return
}

// RealRemote returns the address of the client.
func (ws *WebSocket) RealRemote() string { return ws.remote }

// WriteMessage writes a message with a given websocket type specifier
func (ws *WebSocket) WriteMessage(t int, b []byte) (err error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	if err = ws.Conn.SetWriteDeadline(time.Now().Add(ws.WriteWait)); err != nil {
		return
	}
	if len(b) != 0 {
		log.T.F("sending message to %s\n%s", ws.remote, string(b))
	}
	return ws.Conn.WriteMessage(t, b)
}

// WriteEnvelope sends an envelope as a text message.
func (ws *WebSocket) WriteEnvelope(env enveloper.I) (err error) {
	return ws.WriteMessage(websocket.TextMessage, env.Bytes())
}

// Ping sends a ping control frame.
func (ws *WebSocket) Ping() (err error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	return ws.Conn.WriteControl(websocket.PingMessage, nil,
		time.Now().Add(ws.WriteWait))
}

// Close sends a close frame and closes the connection. It is safe to call
// more than once.
func (ws *WebSocket) Close() (err error) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()
	_ = ws.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	if err = ws.Conn.Close(); err != nil {
		log.T.Ln("closing", ws.remote, err)
	}
	return
}
