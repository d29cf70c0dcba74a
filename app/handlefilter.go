package app

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
)

// handleReq registers a subscription, sends the stored events matching it and
// then EOSE. Only the first filter of the request is used.
//
// If the store fails the subscription is put back the way it was and no EOSE
// is sent.
func (rl *Relay) handleReq(s *Session, env *reqenvelope.T) {
	if len(env.Filters) == 0 {
		s.notice(NoticeNoFilters)
		return
	}
	id, f := env.SubscriptionID, env.Filters[0]
	if len(env.Filters) > 1 {
		log.D.F("subscription %s: ignoring %d extra filters", id,
			len(env.Filters)-1)
	}
	prev, existed := s.subs.Get(id)
	if !existed && rl.MaxSubscriptions > 0 &&
		s.subs.Len() >= rl.MaxSubscriptions {
		s.notice(NoticeTooManySubs)
		return
	}
	s.subs.Set(id, f)
	q := query.Translate(f, rl.Limits)
	evs, err := rl.Store.Scan(rl.Ctx, q)
	if err != nil {
		log.E.F("scan for %s %s: %v", id, f, err)
		s.restore(id, prev, existed)
		s.notice(NoticeStorage)
		return
	}
	log.D.F("subscription %s from %s: %d stored events", id,
		s.conn.RealRemote(), len(evs))
	for _, ev := range evs {
		if !s.send(eventenvelope.New(id, ev)) {
			return
		}
	}
	s.send(eoseenvelope.New(id))
}

func (s *Session) restore(id string, prev *filter.T, existed bool) {
	if existed {
		s.subs.Set(id, prev)
	} else {
		s.subs.Remove(id)
	}
}
