package badger

import (
	"encoding/json"
	"errors"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/dgraph-io/badger/v4"
)

func (b *Backend) InsertIfAbsent(c context.T, ev *event.T) (o eventstore.Outcome,
	err error) {

	var bin []byte
	if bin, err = json.Marshal(ev); chk.E(err) {
		return
	}
	err = b.Update(func(txn *badger.Txn) (err error) {
		// query event by id to ensure we don't save duplicates
		if _, err = txn.Get(eventKey(ev.ID)); err == nil {
			o = eventstore.AlreadyExists
			return
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return
		}
		if err = txn.Set(eventKey(ev.ID), bin); chk.D(err) {
			return
		}
		if err = txn.Set(createdAtKey(ev.CreatedAt, ev.ID), nil); chk.D(err) {
			return
		}
		o = eventstore.Inserted
		log.T.F("event saved %s", ev.ID)
		return
	})
	return
}
