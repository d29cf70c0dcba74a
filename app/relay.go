package app

import (
	"net/http"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
	"github.com/fasthttp/websocket"
	"github.com/puzpuzpuz/xsync/v2"
)

var Version = "v0.1.0"
var Software = "https://github.com/Hubmakerlabs/sandboxr"

const (
	WriteWait           = 10 * time.Second
	PongWait            = 60 * time.Second
	PingPeriod          = 30 * time.Second
	ReadBufferSize      = 4096
	WriteBufferSize     = 4096
	MaxMessageSize  int = 128 << 10
	// DefaultMaxSubscriptions caps the subscriptions one connection can hold.
	DefaultMaxSubscriptions = 20
)

type Relay struct {
	Ctx    context.T
	Cancel context.F
	Config *Config
	Info   *relayinfo.T
	// Store holds every accepted event.
	Store eventstore.Store
	// Verify checks event ids and signatures before anything is stored.
	Verify event.Verifier
	// Limits bound the number of stored events sent for one REQ.
	Limits query.Limits
	// MaxSubscriptions caps subscriptions per connection, 0 means no cap.
	MaxSubscriptions int
	hub              *Hub
	// for establishing websockets
	upgrader websocket.Upgrader
	// keep a connection reference to all connected clients for Server.Shutdown
	clients *xsync.MapOf[*websocket.Conn, struct{}]
	// in case you call Server.Start
	Addr       string
	serveMux   *http.ServeMux
	httpServer *http.Server
	// WriteWait is the time allowed to write a message to the peer.
	WriteWait time.Duration
	// PongWait is the time allowed to read the next pong message from the peer.
	PongWait time.Duration
	// PingPeriod is the tend pings to peer with this period. Must be less than
	// pongWait.
	PingPeriod     time.Duration
	MaxMessageSize int64    // Maximum message size allowed from peer.
	Whitelist      []string // whitelist of allowed IPs for access
}

// NewRelay builds a relay on an initialised store and starts its hub, which
// runs until c is canceled.
func NewRelay(c context.T, cancel context.F, inf *relayinfo.T, conf *Config,
	store eventstore.Store) (r *Relay) {

	if conf == nil {
		conf = &Config{}
	}
	if inf == nil {
		inf = &relayinfo.T{}
	}
	var maxMessageLength = MaxMessageSize
	if conf.MaxMessageSize > 0 {
		maxMessageLength = conf.MaxMessageSize
	}
	limits := query.Limits{Default: conf.DefaultLimit,
		Max: conf.MaxLimit}.Normalize()
	inf.Software = Software
	inf.Version = Version
	for _, n := range []int{relayinfo.BasicProtocol, relayinfo.EventDeletion,
		relayinfo.RelayInformation, relayinfo.SearchCapability} {
		inf.AddSupportedNIP(n)
	}
	inf.Limitation = &relayinfo.Limits{
		MaxMessageLength: maxMessageLength,
		MaxSubscriptions: conf.MaxSubscriptions,
		MaxFilters:       1,
		MaxLimit:         limits.Max,
		DefaultLimit:     limits.Default,
	}
	r = &Relay{
		Ctx:              c,
		Cancel:           cancel,
		Config:           conf,
		Info:             inf,
		Store:            store,
		Verify:           event.Verify,
		Limits:           limits,
		MaxSubscriptions: conf.MaxSubscriptions,
		hub:              NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  ReadBufferSize,
			WriteBufferSize: WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: xsync.NewTypedMapOf[*websocket.Conn,
			struct{}](PointerHasher[websocket.Conn]),
		serveMux:       &http.ServeMux{},
		WriteWait:      WriteWait,
		PongWait:       PongWait,
		PingPeriod:     PingPeriod,
		MaxMessageSize: int64(maxMessageLength),
		Whitelist:      conf.Whitelist,
	}
	r.serveMux.HandleFunc("/", r.HandleUpgradeRequired)
	go r.hub.Run(c)
	return
}

// Sessions returns the number of open sessions.
func (rl *Relay) Sessions() int { return rl.hub.Count() }
