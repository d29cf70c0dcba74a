package eventstore

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
)

// Outcome reports what InsertIfAbsent did.
type Outcome int

const (
	// Inserted means the event was not stored before and now is.
	Inserted Outcome = iota
	// AlreadyExists means an event with the same id was already stored and
	// nothing was written.
	AlreadyExists
)

func (o Outcome) String() string {
	if o == AlreadyExists {
		return "already exists"
	}
	return "inserted"
}

// Store is the persistence layer for events handled by a relay. It owns the
// stored rows; every method is atomic per call and every backend failure is
// returned wrapped in ErrStorageUnavailable.
type Store interface {
	// Init opens the backend and creates whatever schema it needs.
	Init() (err error)
	// Close must be called after you're done using the store, to free up
	// resources and so on.
	Close() (err error)
	// InsertIfAbsent stores the event unless one with the same id exists.
	InsertIfAbsent(c context.T, ev *event.T) (o Outcome, err error)
	// DeleteOwned removes the events with the given ids that were published
	// by pubkey, and nothing else, returning how many were removed.
	DeleteOwned(c context.T, pubkey string, ids []string) (count int,
		err error)
	// Scan returns at most q.Limit events satisfying the query, ordered by
	// query.OrderBy.
	Scan(c context.T, q *query.T) (evs event.Ts, err error)
}

// Walker is implemented by stores that can stream their whole content, used
// by export.
type Walker interface {
	All(c context.T, fn func(ev *event.T) error) (err error)
}
