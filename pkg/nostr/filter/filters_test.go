package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`{"ids":["a1"],"authors":["p1","p2"],"kinds":[1,7],
		"since":10,"until":20,"search":"hi","limit":3,"#e":["x"]}`))
	require.NoError(t, err)
	assert.Equal(t, tag.T{"a1"}, f.IDs)
	assert.Equal(t, tag.T{"p1", "p2"}, f.Authors)
	assert.Equal(t, []kind.T{1, 7}, f.Kinds)
	assert.Equal(t, timestamp.T(10), *f.Since)
	assert.Equal(t, timestamp.T(20), *f.Until)
	assert.Equal(t, "hi", *f.Search)
	assert.Equal(t, 3, *f.Limit)

	f, err = Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, Equal(f, &T{}))
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{
		``, `[]`, `"x"`, `null`, `{"kinds":"1"}`, `{"ids":[1]}`,
		`{"limit":-1}`, `{"since":"yesterday"}`, `{"limit":`,
		`{"limit":"5"}`, `{"limit":true}`, `{"limit":-1e400}`,
		`{"limit":-0.5}`, `{"search":"a\u0000b"}`,
	} {
		_, err := Parse([]byte(in))
		assert.True(t, errors.Is(err, ErrValidation), "input %q", in)
	}
}

func TestParseLimit(t *testing.T) {
	for in, want := range map[string]int{
		`{"limit":10}`:                   10,
		`{"limit":10.0}`:                 10,
		`{"limit":10.9}`:                 10,
		`{"limit":0}`:                    0,
		`{"limit":1e20}`:                 math.MaxInt,
		`{"limit":99999999999999999999}`: math.MaxInt,
		`{"limit":1e400}`:                math.MaxInt,
	} {
		f, err := Parse([]byte(in))
		require.NoError(t, err, in)
		require.NotNil(t, f.Limit, in)
		assert.Equal(t, want, *f.Limit, in)
	}
	f, err := Parse([]byte(`{"limit":null,"search":"ok"}`))
	require.NoError(t, err)
	assert.Nil(t, f.Limit)
	assert.Equal(t, "ok", *f.Search)
}

func TestMatches(t *testing.T) {
	ev := &event.T{ID: "a1", PubKey: "p1", CreatedAt: 100,
		Kind: kind.TextNote, Content: "Hello World"}
	s := func(v string) *string { return &v }
	cases := []struct {
		f    T
		want bool
	}{
		{T{}, true},
		{T{IDs: tag.T{}}, true},
		{T{IDs: tag.T{"a1", "b2"}}, true},
		{T{IDs: tag.T{"b2"}}, false},
		{T{Authors: tag.T{"p2"}}, false},
		{T{Kinds: []kind.T{kind.TextNote}}, true},
		{T{Kinds: []kind.T{kind.Reaction}}, false},
		{T{Since: timestamp.T(100).Ptr()}, true},
		{T{Since: timestamp.T(101).Ptr()}, false},
		{T{Until: timestamp.T(100).Ptr()}, true},
		{T{Until: timestamp.T(99).Ptr()}, false},
		{T{Since: timestamp.T(200).Ptr(), Until: timestamp.T(50).Ptr()}, false},
		{T{Search: s("World")}, true},
		{T{Search: s("world")}, false},
		{T{Search: s("")}, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.f.Matches(ev), c.f.String())
	}
	assert.False(t, (&T{}).Matches(nil))
}

func TestCloneIsDeep(t *testing.T) {
	l := 5
	f := &T{IDs: tag.T{"a"}, Kinds: []kind.T{1}, Limit: &l}
	c := f.Clone()
	require.True(t, Equal(f, c))
	c.IDs[0] = "b"
	*c.Limit = 6
	c.Kinds[0] = 2
	assert.Equal(t, "a", f.IDs[0])
	assert.Equal(t, 5, *f.Limit)
	assert.Equal(t, kind.T(1), f.Kinds[0])
	assert.False(t, Equal(f, c))
}
