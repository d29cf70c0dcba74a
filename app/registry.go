package app

import (
	"sort"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"golang.org/x/exp/maps"
)

// Registry is the set of subscriptions of one session, by subscription id.
type Registry struct {
	m map[string]*filter.T
}

func NewRegistry() *Registry { return &Registry{m: make(map[string]*filter.T)} }

// Set adds a subscription or replaces the filter of an existing one.
func (r *Registry) Set(id string, f *filter.T) { r.m[id] = f }

func (r *Registry) Get(id string) (f *filter.T, ok bool) {
	f, ok = r.m[id]
	return
}

// Remove deletes a subscription and reports whether it existed.
func (r *Registry) Remove(id string) (ok bool) {
	if _, ok = r.m[id]; ok {
		delete(r.m, id)
	}
	return
}

func (r *Registry) Len() int { return len(r.m) }

// IDs returns the subscription ids in sorted order.
func (r *Registry) IDs() (ids []string) {
	ids = maps.Keys(r.m)
	sort.Strings(ids)
	return
}

// ForEach calls fn for every subscription, in no particular order, until fn
// returns false.
func (r *Registry) ForEach(fn func(id string, f *filter.T) bool) {
	for id, f := range r.m {
		if !fn(id, f) {
			return
		}
	}
}
