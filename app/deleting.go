package app

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
)

// applyDeletion retracts the events named by the "e" tags of a deletion
// request, limited to those published by the request's author.
//
// "a" tags address replaceable events by coordinate. They are parsed and
// logged but not acted on.
func (rl *Relay) applyDeletion(c context.T, ev *event.T) (retracted int,
	err error) {

	ids := ev.Tags.Values("e")
	if len(ids) > 0 {
		if retracted, err = rl.Store.DeleteOwned(c, ev.PubKey, ids); err != nil {
			return
		}
		log.D.F("deletion %s by %s retracted %d of %d events", ev.ID,
			ev.PubKey, retracted, len(ids))
	}
	for _, a := range ev.Tags.Values("a") {
		if coord, ok := eventstore.ParseCoordinate(a); ok {
			log.D.F("deletion %s names coordinate %d:%s:%s, not applied",
				ev.ID, coord.Kind, coord.PubKey, coord.D)
		} else {
			log.D.F("deletion %s has malformed coordinate %q", ev.ID, a)
		}
	}
	return
}
