package badger

import (
	"errors"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/dgraph-io/badger/v4"
)

// Scan evaluates the query's filter with the live matcher while walking the
// created_at index, so results agree with live matching by construction.
func (b *Backend) Scan(c context.T, q *query.T) (evs event.Ts, err error) {
	if q.Limit <= 0 {
		return
	}
	f := q.Filter
	if f == nil {
		f = &filter.T{}
	}
	err = b.View(func(txn *badger.Txn) (err error) {
		if len(f.IDs) > 0 {
			evs, err = scanIDs(txn, f, q.Limit)
			return
		}
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{prefixCreatedAt}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err = c.Err(); err != nil {
				return
			}
			id := idFromCreatedAtKey(it.Item().Key())
			var ev *event.T
			if ev, err = getEvent(txn, id); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					log.W.Ln("created_at index entry without event", id)
					err = nil
					continue
				}
				return
			}
			if !f.Matches(ev) {
				continue
			}
			evs = append(evs, ev)
			if len(evs) >= q.Limit {
				return
			}
		}
		return
	})
	if err != nil {
		evs = nil
	}
	return
}

// scanIDs looks each id up directly instead of walking the whole index.
func scanIDs(txn *badger.Txn, f *filter.T, limit int) (evs event.Ts,
	err error) {

	seen := make(map[string]struct{}, len(f.IDs))
	for _, id := range f.IDs {
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
		if f.Matches(ev) {
			evs = append(evs, ev)
		}
	}
	eventstore.Sort(evs)
	if len(evs) > limit {
		evs = evs[:limit]
	}
	return
}

// All streams every stored event in scan order, for exports.
func (b *Backend) All(c context.T, fn func(ev *event.T) error) (err error) {
	return b.View(func(txn *badger.Txn) (err error) {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{prefixCreatedAt}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err = c.Err(); err != nil {
				return
			}
			var ev *event.T
			if ev, err = getEvent(txn,
				idFromCreatedAtKey(it.Item().Key())); err != nil {
				return
			}
			if err = fn(ev); err != nil {
				return
			}
		}
		return
	})
}
