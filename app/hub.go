package app

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/context"
)

// InboxSize is how many jobs can wait for the hub before senders block.
const InboxSize = 1024

// Hub is the single owner of every open session and its subscriptions.
// Each protocol message, open and close is a job on the inbox, and jobs run
// one at a time in Run, so no session state is ever shared between
// goroutines.
type Hub struct {
	inbox    chan func()
	stopped  chan struct{}
	sessions map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{
		inbox:    make(chan func(), InboxSize),
		stopped:  make(chan struct{}),
		sessions: make(map[*Session]struct{}),
	}
}

// Run executes jobs in arrival order until c is done, then closes every
// session still open.
func (h *Hub) Run(c context.T) {
	defer close(h.stopped)
	for {
		select {
		case <-c.Done():
			for s := range h.sessions {
				h.evict(s)
			}
			log.D.Ln("hub stopped")
			return
		case job := <-h.inbox:
			job()
		}
	}
}

// Do queues a job. It returns false once the hub has stopped.
func (h *Hub) Do(job func()) bool {
	select {
	case <-h.stopped:
		return false
	default:
	}
	select {
	case h.inbox <- job:
		return true
	case <-h.stopped:
		return false
	}
}

// Sync waits until every job queued before it has run.
func (h *Hub) Sync() {
	done := make(chan struct{})
	if !h.Do(func() { close(done) }) {
		return
	}
	select {
	case <-done:
	case <-h.stopped:
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() (n int) {
	done := make(chan struct{})
	if !h.Do(func() { n = len(h.sessions); close(done) }) {
		return
	}
	select {
	case <-done:
	case <-h.stopped:
	}
	return
}

func (h *Hub) add(s *Session) { h.sessions[s] = struct{}{} }

// evict closes a session, releases its registry and drops it from the live
// set. Only called from a job.
func (h *Hub) evict(s *Session) {
	if s.state == Closed {
		return
	}
	s.state = Closed
	s.subs = nil
	delete(h.sessions, s)
	log.T.Ln("session closed", s.conn.RealRemote())
	if err := s.conn.Close(); err != nil {
		log.T.Ln("closing", s.conn.RealRemote(), err)
	}
}
