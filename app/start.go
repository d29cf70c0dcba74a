package app

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/fasthttp/websocket"
	"github.com/rs/cors"
)

func (rl *Relay) Router() *http.ServeMux { return rl.serveMux }

// Start creates an http server and starts listening on addr. It returns when
// the server is shut down.
func (rl *Relay) Start(addr string, started ...chan bool) (err error) {
	var ln net.Listener
	if ln, err = net.Listen("tcp", addr); chk.E(err) {
		return
	}
	rl.Addr = ln.Addr().String()
	rl.httpServer = &http.Server{
		Handler:           cors.Default().Handler(rl),
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	log.I.Ln("listening on", rl.Addr)
	// notify caller that we're starting
	for _, s := range started {
		close(s)
	}
	if err = rl.httpServer.Serve(ln); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if chk.E(err) {
		return
	}
	return
}

// Shutdown stops the http server, sends a websocket close control message to
// all connected clients and stops the hub.
func (rl *Relay) Shutdown(c context.T) {
	if rl.httpServer != nil {
		chk.E(rl.httpServer.Shutdown(c))
	}
	rl.clients.Range(func(conn *websocket.Conn, _ struct{}) bool {
		chk.T(conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second)))
		chk.T(conn.Close())
		rl.clients.Delete(conn)
		return true
	})
	if rl.Cancel != nil {
		rl.Cancel()
	}
}
