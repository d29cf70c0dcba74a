package app

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
)

// Sender is the outbound half of a client connection.
type Sender interface {
	WriteEnvelope(env enveloper.I) (err error)
	Close() (err error)
	RealRemote() string
}

type State int

const (
	Open State = iota
	Closed
)

func (s State) String() string {
	if s == Closed {
		return "closed"
	}
	return "open"
}

const (
	NoticeBadSignature = "invalid: event id or signature verification failed"
	NoticeNoFilters    = "invalid: REQ requires at least one filter"
	NoticeTooManySubs  = "blocked: too many subscriptions"
	OKDuplicate        = "duplicate: already have this event"
)

// NoticeStorage is sent when the store fails.
var NoticeStorage = eventstore.ErrStorageUnavailable.Error()

// Session is one client connection and its subscriptions. All fields are
// owned by the hub and only touched from its jobs.
type Session struct {
	rl    *Relay
	conn  Sender
	state State
	subs  *Registry
}

// Open registers a new session for a connection.
func (rl *Relay) Open(conn Sender) (s *Session) {
	s = &Session{rl: rl, conn: conn, state: Open, subs: NewRegistry()}
	if !rl.hub.Do(func() { rl.hub.add(s) }) {
		s.state = Closed
		s.subs = nil
	}
	return
}

// Receive queues a message from the client for processing.
func (s *Session) Receive(msg []byte) bool {
	return s.rl.hub.Do(func() { s.handleMessage(msg) })
}

// Disconnect queues the end of the session after its transport closed.
func (s *Session) Disconnect() {
	s.rl.hub.Do(func() { s.rl.hub.evict(s) })
}

func (s *Session) handleMessage(msg []byte) {
	if s.state != Open {
		return
	}
	en, err := envelopes.Parse(msg)
	if err != nil {
		log.D.F("bad message from %s: %v", s.conn.RealRemote(), err)
		s.notice(err.Error())
		return
	}
	switch env := en.(type) {
	case *eventenvelope.T:
		s.rl.handleEvent(s, env.Event)
	case *reqenvelope.T:
		s.rl.handleReq(s, env)
	case *closeenvelope.T:
		if s.subs.Remove(env.SubscriptionID) {
			log.T.Ln("closed subscription", env.SubscriptionID,
				s.conn.RealRemote())
		}
	default:
		s.notice(enveloper.Invalid("unexpected %s message from client",
			en.Label()).Error())
	}
}

// send writes an envelope, evicting the session if the write fails.
func (s *Session) send(env enveloper.I) (ok bool) {
	if s.state != Open {
		return false
	}
	if err := s.conn.WriteEnvelope(env); err != nil {
		log.D.F("write to %s failed: %v", s.conn.RealRemote(), err)
		s.rl.hub.evict(s)
		return false
	}
	return true
}

func (s *Session) notice(text string) bool {
	return s.send(noticeenvelope.New(text))
}
