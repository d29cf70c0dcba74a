package badger

import (
	"encoding/json"
	"errors"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/dgraph-io/badger/v4"
)

func (b *Backend) DeleteOwned(c context.T, pubkey string,
	ids []string) (count int, err error) {

	if len(ids) == 0 {
		return
	}
	err = b.Update(func(txn *badger.Txn) (err error) {
		count = 0
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			var ev *event.T
			if ev, err = getEvent(txn, id); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					err = nil
					continue
				}
				return
			}
			if ev.PubKey != pubkey {
				log.D.F("not deleting %s, owned by %s not %s", id, ev.PubKey,
					pubkey)
				continue
			}
			if err = txn.Delete(eventKey(id)); err != nil {
				return
			}
			if err = txn.Delete(createdAtKey(ev.CreatedAt, id)); err != nil {
				return
			}
			count++
		}
		return
	})
	if err != nil {
		count = 0
	}
	return
}

func getEvent(txn *badger.Txn, id string) (ev *event.T, err error) {
	var item *badger.Item
	if item, err = txn.Get(eventKey(id)); err != nil {
		return
	}
	err = item.Value(func(v []byte) error {
		ev = &event.T{}
		return json.Unmarshal(v, ev)
	})
	return
}
