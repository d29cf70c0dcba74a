package event_test

import (
	"encoding/json"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event/eventest"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	s := eventest.NewSigner()
	ev := s.Event(kind.TextNote, 1700000000, "hello",
		tags.T{{"t", "greeting"}})
	assert.Len(t, ev.ID, 64)
	assert.Equal(t, s.Pub, ev.PubKey)
	assert.True(t, ev.CheckID())
	assert.True(t, event.Verify(ev))

	tampered := ev.Clone()
	tampered.Content = "goodbye"
	assert.False(t, event.Verify(tampered))

	// a recomputed id does not rescue a signature made over another id
	tampered.ID = tampered.GetID()
	assert.False(t, event.Verify(tampered))

	assert.False(t, event.Verify(eventest.Unsigned("a1", "p1", 1, 0, "", nil)))
	assert.False(t, event.Verify(nil))
}

func TestJSON(t *testing.T) {
	ev := eventest.Unsigned("a1", "p1", kind.TextNote, 42, "x", nil)
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1","pubkey":"p1","created_at":42,"kind":1,
		"tags":[],"content":"x","sig":""}`, string(b))

	var back event.T
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ev.ID, back.ID)
	assert.Equal(t, ev.CreatedAt, back.CreatedAt)
}

func TestNostrConversion(t *testing.T) {
	s := eventest.NewSigner()
	ev := s.Event(kind.Reaction, 5, "+", tags.T{{"e", "abc", "wss://r"}})
	assert.Equal(t, ev, event.FromNostr(ev.ToNostr()))
}
