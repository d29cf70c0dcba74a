package app

import (
	"errors"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
)

// handleEvent is the publish path: verify, store, apply a deletion request,
// acknowledge, then broadcast whether or not the event was new.
func (rl *Relay) handleEvent(s *Session, ev *event.T) {
	if !rl.Verify(ev) {
		log.D.F("rejecting event %s from %s: bad id or signature", ev.ID,
			s.conn.RealRemote())
		s.notice(NoticeBadSignature)
		return
	}
	o, err := rl.AddEvent(rl.Ctx, ev)
	if err != nil {
		log.E.F("storing event %s: %v", ev.ID, err)
		s.notice(NoticeStorage)
		return
	}
	var reason string
	if o == eventstore.AlreadyExists {
		reason = OKDuplicate
	}
	if !s.send(okenvelope.New(ev.ID, true, reason)) {
		// the publisher is gone but the event is stored, subscribers still
		// get it
		log.D.Ln("publisher went away before OK", ev.ID)
	}
	rl.hub.broadcast(ev)
}

// AddEvent stores a verified event and, when it is a deletion request,
// retracts what it references. Every error wraps
// eventstore.ErrStorageUnavailable.
func (rl *Relay) AddEvent(c context.T, ev *event.T) (o eventstore.Outcome,
	err error) {

	if ev == nil {
		err = errors.New("error: event is nil")
		log.E.Ln(err)
		return
	}
	if o, err = rl.Store.InsertIfAbsent(c, ev); err != nil {
		return o, eventstore.Unavailable(err)
	}
	log.D.F("event %s kind %s from %s: %s", ev.ID, ev.Kind, ev.PubKey, o)
	if ev.Kind.IsDeletion() {
		if _, err = rl.applyDeletion(c, ev); err != nil {
			return o, eventstore.Unavailable(err)
		}
	}
	return
}
