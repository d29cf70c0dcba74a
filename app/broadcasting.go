package app

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
)

// broadcast sends an event to every live subscription whose filter matches
// it. A session that cannot be written to is evicted and the rest still get
// the event. Only called from a job.
func (h *Hub) broadcast(ev *event.T) {
	var sent int
	for s := range h.sessions {
		s.subs.ForEach(func(id string, f *filter.T) bool {
			if !f.Matches(ev) {
				return true
			}
			if !s.send(eventenvelope.New(id, ev)) {
				return false
			}
			sent++
			return true
		})
	}
	log.T.F("broadcast %s to %d subscriptions", ev.ID, sent)
}
