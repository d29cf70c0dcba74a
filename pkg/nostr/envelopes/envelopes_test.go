package envelopes

import (
	"errors"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientMessages(t *testing.T) {
	env, err := Parse([]byte(`["EVENT",{"id":"a1","pubkey":"p1",
		"created_at":100,"kind":1,"tags":[["t","x"]],"content":"hi","sig":"s"}]`))
	require.NoError(t, err)
	ee, ok := env.(*eventenvelope.T)
	require.True(t, ok)
	assert.Empty(t, ee.SubscriptionID)
	assert.Equal(t, "a1", ee.Event.ID)
	assert.Equal(t, kind.TextNote, ee.Event.Kind)
	assert.Equal(t, "x", ee.Event.Tags[0].Value())

	env, err = Parse([]byte(`["REQ","s1",{"authors":["p1"]},{"kinds":[7]}]`))
	require.NoError(t, err)
	re := env.(*reqenvelope.T)
	assert.Equal(t, "s1", re.SubscriptionID)
	require.Len(t, re.Filters, 2)
	assert.Equal(t, tag.T{"p1"}, re.Filters[0].Authors)

	env, err = Parse([]byte(`["REQ","s2"]`))
	require.NoError(t, err)
	assert.Empty(t, env.(*reqenvelope.T).Filters)

	env, err = Parse([]byte(`["CLOSE","s1"]`))
	require.NoError(t, err)
	assert.Equal(t, "s1", env.(*closeenvelope.T).SubscriptionID)
}

func TestParseRelayMessages(t *testing.T) {
	ev := &event.T{ID: "a1", PubKey: "p1", CreatedAt: 1, Kind: 1}
	for _, want := range []interface {
		Bytes() []byte
	}{
		eventenvelope.New("s1", ev),
		okenvelope.New("a1", true, okenvelope.Duplicate.Message("already have this event")),
		eoseenvelope.New("s1"),
		noticeenvelope.New("error: storage unavailable"),
		reqenvelope.New("s1", &filter.T{IDs: tag.T{"a1"}}),
	} {
		got, err := Parse(want.Bytes())
		require.NoError(t, err, string(want.Bytes()))
		assert.Equal(t, want.Bytes(), got.Bytes())
	}
}

func TestWireShapes(t *testing.T) {
	assert.JSONEq(t, `["OK","a1",true,""]`,
		okenvelope.New("a1", true, "").String())
	assert.JSONEq(t, `["EOSE","s1"]`, eoseenvelope.New("s1").String())
	assert.JSONEq(t, `["NOTICE","x"]`, noticeenvelope.New("x").String())
	assert.JSONEq(t, `["EVENT","s1",{"id":"a1","pubkey":"p1","created_at":5,
		"kind":1,"tags":[],"content":"","sig":""}]`,
		eventenvelope.New("s1", &event.T{ID: "a1", PubKey: "p1",
			CreatedAt: 5, Kind: 1}).String())
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{
		``, `{}`, `null`, `[]`, `[1]`, `["PING"]`, `["EVENT"]`,
		`["EVENT","x"]`, `["EVENT",{"kind":"one"}]`, `["EVENT","s",{},{}]`,
		`["REQ"]`, `["REQ",5,{}]`, `["REQ","",{}]`, `["CLOSE"]`,
		`["CLOSE","a","b"]`, `["OK","a1","yes",""]`, `not json`,
	} {
		_, err := Parse([]byte(in))
		assert.True(t, errors.Is(err, ErrInvalid), "input %q gave %v", in, err)
	}
	_, err := Parse([]byte(`["REQ","s1",{"limit":-5}]`))
	assert.True(t, errors.Is(err, filter.ErrValidation))
	_, err = Parse([]byte(`["REQ","s1",[]]`))
	assert.True(t, errors.Is(err, filter.ErrValidation))
}
