package eventstore

import (
	"sort"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
)

// Before reports whether a sorts ahead of b in scan order: newest first, ties
// broken by ascending id.
func Before(a, b *event.T) bool {
	return a.CreatedAt > b.CreatedAt ||
		(a.CreatedAt == b.CreatedAt && a.ID < b.ID)
}

// Sort puts events in scan order.
func Sort(evs event.Ts) {
	sort.Slice(evs, func(i, j int) bool { return Before(evs[i], evs[j]) })
}
