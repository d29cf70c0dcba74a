// Package storetest is a conformance suite run against every eventstore.Store
// backend.
package storetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opener returns a fresh, initialised, empty store. The suite closes it.
type Opener func(t *testing.T) eventstore.Store

func hexID(n int) string { return fmt.Sprintf("%064x", n) }

func ev(n int, pubkey string, k kind.T, at timestamp.T,
	content string) *event.T {

	return &event.T{
		ID:        hexID(n),
		PubKey:    pubkey,
		CreatedAt: at,
		Kind:      k,
		Tags:      tags.T{{"t", "test"}},
		Content:   content,
		Sig:       "00",
	}
}

func scan(t *testing.T, s eventstore.Store, f *filter.T,
	l query.Limits) event.Ts {

	evs, err := s.Scan(context.Bg(), query.Translate(f, l))
	require.NoError(t, err)
	return evs
}

func ids(evs event.Ts) (out []string) {
	for _, e := range evs {
		out = append(out, e.ID)
	}
	return
}

// Run exercises the whole Store contract.
func Run(t *testing.T, open Opener) {
	t.Run("InsertOutcome", func(t *testing.T) { insertOutcome(t, open) })
	t.Run("RoundTrip", func(t *testing.T) { roundTrip(t, open) })
	t.Run("Ordering", func(t *testing.T) { ordering(t, open) })
	t.Run("Limits", func(t *testing.T) { limits(t, open) })
	t.Run("DeleteOwned", func(t *testing.T) { deleteOwned(t, open) })
	t.Run("Search", func(t *testing.T) { search(t, open) })
	t.Run("MatcherParity", func(t *testing.T) { matcherParity(t, open) })
	t.Run("SearchParity", func(t *testing.T) { searchParity(t, open) })
	t.Run("Closed", func(t *testing.T) { closed(t, open) })
}

func insertOutcome(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	e := ev(1, "p1", kind.TextNote, 100, "hello")
	o, err := s.InsertIfAbsent(context.Bg(), e)
	require.NoError(t, err)
	assert.Equal(t, eventstore.Inserted, o)
	o, err = s.InsertIfAbsent(context.Bg(), e)
	require.NoError(t, err)
	assert.Equal(t, eventstore.AlreadyExists, o)
	assert.Len(t, scan(t, s, &filter.T{}, query.Limits{}), 1)
}

func roundTrip(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	e := ev(1, "p1", kind.Reaction, 1700000000, "+")
	e.Tags = tags.T{{"e", hexID(9), "wss://x"}, {"p", "p2"}}
	_, err := s.InsertIfAbsent(context.Bg(), e)
	require.NoError(t, err)
	evs := scan(t, s, &filter.T{IDs: tag.T{e.ID}}, query.Limits{})
	require.Len(t, evs, 1)
	assert.Equal(t, e, evs[0])

	bare := ev(2, "p1", kind.TextNote, 5, "")
	bare.Tags = nil
	_, err = s.InsertIfAbsent(context.Bg(), bare)
	require.NoError(t, err)
	evs = scan(t, s, &filter.T{IDs: tag.T{bare.ID}}, query.Limits{})
	require.Len(t, evs, 1)
	assert.Empty(t, evs[0].Tags)
}

func ordering(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	for _, e := range []*event.T{
		ev(3, "p1", kind.TextNote, 10, "a"),
		ev(1, "p1", kind.TextNote, 20, "b"),
		ev(4, "p1", kind.TextNote, 20, "c"),
		ev(2, "p1", kind.TextNote, 30, "d"),
	} {
		_, err := s.InsertIfAbsent(context.Bg(), e)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{hexID(2), hexID(1), hexID(4), hexID(3)},
		ids(scan(t, s, &filter.T{}, query.Limits{})))
	assert.Equal(t, []string{hexID(1), hexID(4)},
		ids(scan(t, s, &filter.T{Since: timestamp.T(20).Ptr(),
			Until: timestamp.T(20).Ptr()}, query.Limits{})))
	// an impossible window is not an error
	assert.Empty(t, scan(t, s, &filter.T{Since: timestamp.T(25).Ptr(),
		Until: timestamp.T(15).Ptr()}, query.Limits{}))
	assert.Equal(t, []string{hexID(2), hexID(3)},
		ids(scan(t, s, &filter.T{IDs: tag.T{hexID(3), hexID(2), hexID(7)}},
			query.Limits{})))
}

func limits(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	for i := 0; i < 12; i++ {
		_, err := s.InsertIfAbsent(context.Bg(),
			ev(i+1, "p1", kind.TextNote, timestamp.T(1000+i), "n"))
		require.NoError(t, err)
	}
	l := query.Limits{Default: 5, Max: 8}
	assert.Len(t, scan(t, s, &filter.T{}, l), 5)
	zero := 0
	assert.Len(t, scan(t, s, &filter.T{Limit: &zero}, l), 5)
	three := 3
	got := scan(t, s, &filter.T{Limit: &three}, l)
	assert.Equal(t, []string{hexID(12), hexID(11), hexID(10)}, ids(got))
	huge := 1000
	assert.Len(t, scan(t, s, &filter.T{Limit: &huge}, l), 8)
	assert.Len(t, scan(t, s, &filter.T{Limit: &huge}, query.Limits{}), 12)
}

func deleteOwned(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	mine := ev(1, "alice", kind.TextNote, 10, "mine")
	theirs := ev(2, "bob", kind.TextNote, 11, "theirs")
	for _, e := range []*event.T{mine, theirs} {
		_, err := s.InsertIfAbsent(context.Bg(), e)
		require.NoError(t, err)
	}
	n, err := s.DeleteOwned(context.Bg(), "alice",
		[]string{mine.ID, theirs.ID, hexID(99)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{theirs.ID},
		ids(scan(t, s, &filter.T{}, query.Limits{})))

	n, err = s.DeleteOwned(context.Bg(), "alice", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	// a deleted id can be stored again
	o, err := s.InsertIfAbsent(context.Bg(), mine)
	require.NoError(t, err)
	assert.Equal(t, eventstore.Inserted, o)
}

func search(t *testing.T, open Opener) {
	s := open(t)
	defer s.Close()
	contents := []string{"100% sure", "100 percent", "snake_case",
		"snakeXcase", `back\slash`, "Hello World", "hello world"}
	for i, c := range contents {
		_, err := s.InsertIfAbsent(context.Bg(),
			ev(i+1, "p1", kind.TextNote, timestamp.T(100+i), c))
		require.NoError(t, err)
	}
	find := func(term string) (out []string) {
		for _, e := range scan(t, s, &filter.T{Search: &term},
			query.Limits{}) {
			out = append(out, e.Content)
		}
		return
	}
	assert.Equal(t, []string{"100% sure"}, find("0%"))
	assert.Equal(t, []string{"snake_case"}, find("_"))
	assert.Equal(t, []string{`back\slash`}, find(`\`))
	assert.Equal(t, []string{"Hello World"}, find("World"))
	assert.Equal(t, []string{"hello world"}, find("hello"))
	assert.Len(t, find(""), len(contents))
}

// matcherParity checks that a scan of a store holding a single event returns
// it exactly when the filter matches it live.
func matcherParity(t *testing.T, open Opener) {
	e := ev(5, "p1", kind.TextNote, 500, "the 50% off_sale")
	term := func(s string) *string { return &s }
	filters := []*filter.T{
		{},
		{IDs: tag.T{}},
		{IDs: tag.T{hexID(5)}},
		{IDs: tag.T{hexID(6)}},
		{Authors: tag.T{"p1", "p2"}},
		{Authors: tag.T{"p2"}},
		{Kinds: []kind.T{kind.TextNote}},
		{Kinds: []kind.T{kind.Reaction, kind.Deletion}},
		{Kinds: []kind.T{}},
		{Since: timestamp.T(500).Ptr()},
		{Since: timestamp.T(501).Ptr()},
		{Until: timestamp.T(500).Ptr()},
		{Until: timestamp.T(499).Ptr()},
		{Since: timestamp.T(600).Ptr(), Until: timestamp.T(400).Ptr()},
		{Search: term("50%")},
		{Search: term("5%")},
		{Search: term("off_")},
		{Search: term("off%sale")},
		{Search: term("SALE")},
		{Search: term("")},
		{Authors: tag.T{"p1"}, Kinds: []kind.T{kind.TextNote},
			Search: term("sale"), Since: timestamp.T(1).Ptr()},
		{Authors: tag.T{"p1"}, Kinds: []kind.T{kind.Reaction}},
	}
	s := open(t)
	defer s.Close()
	_, err := s.InsertIfAbsent(context.Bg(), e)
	require.NoError(t, err)
	for _, f := range filters {
		got := scan(t, s, f, query.Limits{})
		if f.Matches(e) {
			assert.Equal(t, []string{e.ID}, ids(got), f.String())
		} else {
			assert.Empty(t, got, f.String())
		}
	}
}

// searchParity covers content and terms that string functions in a
// database can treat differently from a byte substring test: embedded NUL,
// case, and terms far longer than a typical pattern limit.
func searchParity(t *testing.T, open Opener) {
	long := strings.Repeat("x", 60000)
	cases := []struct{ content, term string }{
		{"ab\x00cd", "cd"},
		{"ab\x00cd", "b\x00c"},
		{"ab\x00cd", "ab"},
		{"xa", "a\x00b"},
		{"abc", "a\x00b"},
		{"Sale", "sale"},
		{"ÄÖ", "äö"},
		{long + "y", long},
		{long + "y", long + "z"},
		{"short", long},
	}
	for i, c := range cases {
		func() {
			s := open(t)
			defer s.Close()
			e := ev(i+1, "p1", kind.TextNote, 100, c.content)
			_, err := s.InsertIfAbsent(context.Bg(), e)
			require.NoError(t, err)
			term := c.term
			f := &filter.T{Search: &term}
			got := scan(t, s, f, query.Limits{})
			want := strings.Contains(c.content, c.term)
			require.Equal(t, want, f.Matches(e), "case %d", i)
			if want {
				assert.Equal(t, []string{e.ID}, ids(got), "case %d", i)
			} else {
				assert.Empty(t, got, "case %d", i)
			}
		}()
	}
}

func closed(t *testing.T, open Opener) {
	s := open(t)
	require.NoError(t, s.Close())
	_, err := s.InsertIfAbsent(context.Bg(), ev(1, "p1", kind.TextNote, 1, ""))
	assert.ErrorIs(t, err, eventstore.ErrStorageUnavailable)
	_, err = s.Scan(context.Bg(), query.Translate(&filter.T{}, query.Limits{}))
	assert.ErrorIs(t, err, eventstore.ErrStorageUnavailable)
	_, err = s.DeleteOwned(context.Bg(), "p1", []string{hexID(1)})
	assert.ErrorIs(t, err, eventstore.ErrStorageUnavailable)
}
