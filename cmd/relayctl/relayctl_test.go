package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	relayapp "github.com/Hubmakerlabs/sandboxr/app"
	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event/eventest"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/sqldb"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRelay(t *testing.T) (url string) {
	store := sqldb.New(sqldb.SQLite, sqldb.Memory)
	require.NoError(t, store.Init())
	c, cancel := context.Cancel(context.Bg())
	rl := relayapp.NewRelay(c, cancel, nil, nil, store)
	srv := httptest.NewServer(rl)
	t.Cleanup(func() {
		srv.Close()
		cancel()
		_ = store.Close()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// stored asks the relay for everything the author published.
func stored(t *testing.T, url, author string) (evs []*event.T) {
	r, err := dial(context.Bg(), url)
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, r.Send(reqenvelope.New("check",
		&filter.T{Authors: []string{author}})))
	for {
		var env enveloper.I
		env, err = r.Receive()
		require.NoError(t, err)
		switch e := env.(type) {
		case *eventenvelope.T:
			evs = append(evs, e.Event)
		case *eoseenvelope.T:
			return
		}
	}
}

func TestPublishQueryDelete(t *testing.T) {
	url := startRelay(t)
	signer := eventest.NewSigner()

	require.NoError(t, app.Run([]string{"relayctl", "-q", "event",
		"--sec", signer.Sec, "-c", "hello relay", "-t", "t=greeting",
		"--created-at", "1700000000", url}))
	evs := stored(t, url, signer.Pub)
	require.Len(t, evs, 1)
	assert.Equal(t, "hello relay", evs[0].Content)
	assert.Equal(t, "greeting", evs[0].Tags.Values("t")[0])
	assert.True(t, event.Verify(evs[0]))

	require.NoError(t, app.Run([]string{"relayctl", "-q", "req",
		"-a", signer.Pub, "-l", "5", url}))

	require.NoError(t, app.Run([]string{"relayctl", "-q", "delete",
		"--sec", signer.Sec, "-e", evs[0].ID, url}))
	evs = stored(t, url, signer.Pub)
	require.Len(t, evs, 1, "only the deletion event remains")
	assert.True(t, evs[0].Kind.IsDeletion())
}

func TestBadArguments(t *testing.T) {
	assert.Error(t, app.Run([]string{"relayctl", "-q", "event", "--sec",
		"nothex", "-c", "x"}))
	assert.Error(t, app.Run([]string{"relayctl", "-q", "event", "-t",
		"=novalue"}))
	assert.Error(t, app.Run([]string{"relayctl", "-q", "req", "--since",
		"yesterday"}))
	assert.Error(t, app.Run([]string{"relayctl", "-q", "event",
		"ws://127.0.0.1:1"}))
}

func TestHelpers(t *testing.T) {
	a, b := newSubscriptionID(), newSubscriptionID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "relayctl-"))

	ts, err := parseTimestamp("1700000000")
	require.NoError(t, err)
	assert.EqualValues(t, 1700000000, *ts)
	ts, err = parseTimestamp("")
	require.NoError(t, err)
	assert.Nil(t, ts)

	assert.Equal(t, "wss://relay.example", normalizeURL("relay.example"))
	assert.Equal(t, "ws://localhost:3334", normalizeURL("ws://localhost:3334"))
	assert.Error(t, validateRelayURL("ws://"))
}
