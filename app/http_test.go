package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event/eventest"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/badger"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEnvelope(t *testing.T, conn *websocket.Conn) enveloper.I {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, b, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := envelopes.Parse(b)
	require.NoError(t, err, string(b))
	return env
}

func TestWebsocketEndToEnd(t *testing.T) {
	rl := newTestRelay(t, nil, nil)
	rl.Verify = event.Verify
	srv := httptest.NewServer(rl)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	signer := eventest.NewSigner()
	ev := signer.Event(kind.TextNote, 1700000000, "over the wire",
		tags.T{{"t", "e2e"}})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		(&eventenvelope.T{Event: ev}).Bytes()))
	okEnv, isOK := readEnvelope(t, conn).(*okenvelope.T)
	require.True(t, isOK)
	assert.Equal(t, ev.ID, okEnv.ID)
	assert.True(t, okEnv.OK)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		reqenvelope.New("sub", &filter.T{Authors: []string{signer.Pub}}).
			Bytes()))
	got, isEvent := readEnvelope(t, conn).(*eventenvelope.T)
	require.True(t, isEvent)
	assert.Equal(t, "sub", got.SubscriptionID)
	assert.Equal(t, ev.ID, got.Event.ID)
	assert.True(t, event.Verify(got.Event))
	_, isEOSE := readEnvelope(t, conn).(*eoseenvelope.T)
	assert.True(t, isEOSE)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return rl.Sessions() == 0 },
		5*time.Second, 10*time.Millisecond)
}

func TestRelayInformationDocument(t *testing.T) {
	rl := newTestRelay(t, nil, &Config{MaxSubscriptions: 7})
	srv := httptest.NewServer(rl)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", relayinfo.MIME)
	req.Header.Set("Origin", "https://client.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	info := &relayinfo.T{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(info))
	assert.Equal(t, []int{1, 9, 11, 50}, info.SupportedNIPs)
	require.NotNil(t, info.Limitation)
	assert.Equal(t, 7, info.Limitation.MaxSubscriptions)
	assert.Equal(t, 500, info.Limitation.MaxLimit)
	assert.Equal(t, 100, info.Limitation.DefaultLimit)

	fetched, err := relayinfo.Fetch(context.Bg(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, Software, fetched.Software)
}

func TestPlainRequestNeedsUpgrade(t *testing.T) {
	rl := newTestRelay(t, nil, nil)
	srv := httptest.NewServer(rl)
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Expected Upgrade: websocket")
}

func TestWhitelistRefuses(t *testing.T) {
	rl := newTestRelay(t, nil, &Config{Whitelist: []string{"10.9.8.7"}})
	srv := httptest.NewServer(rl)
	defer srv.Close()
	_, resp, err := websocket.DefaultDialer.Dial(
		"ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExportImport(t *testing.T) {
	src := newTestRelay(t, nil, nil)
	src.Verify = event.Verify
	signer := eventest.NewSigner()
	note := signer.Event(kind.TextNote, 10, "kept", nil)
	gone := signer.Event(kind.TextNote, 11, "retracted", nil)
	del := signer.Event(kind.Deletion, 12, "", tags.T{{"e", gone.ID}})
	for _, ev := range []*event.T{note, gone, del} {
		_, err := src.AddEvent(context.Bg(), ev)
		require.NoError(t, err)
	}

	for _, name := range []string{"events.jsonl", "events.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, src.ExportFile(context.Bg(), path))

			bb := badger.GetMemoryBackend()
			require.NoError(t, bb.Init())
			dst := newTestRelay(t, bb, nil)
			dst.Verify = event.Verify
			require.NoError(t, dst.ImportFiles(context.Bg(), []string{path}))

			var buf bytes.Buffer
			n, err := dst.Export(context.Bg(), &buf)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)
			assert.Contains(t, lines[0], del.ID)
			assert.Contains(t, lines[1], note.ID)
		})
	}
}

func TestImportSkipsBadLines(t *testing.T) {
	rl := newTestRelay(t, nil, nil)
	rl.Verify = event.Verify
	good := eventest.NewSigner().Event(kind.TextNote, 1, "ok", nil)
	forged := eventest.Unsigned("ff", "p1", kind.TextNote, 2, "forged", nil)
	in := strings.Join([]string{good.String(), "", "garbage",
		forged.String(), good.String()}, "\n")
	n, err := rl.Import(context.Bg(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestConfigSaveLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			c := &Config{Listen: "127.0.0.1:4444", EventStore: "badger",
				Name: "r", MaxLimit: 50, MaxSubscriptions: 3,
				Whitelist: []string{"127.0.0.1"}, Profile: "not saved"}
			require.NoError(t, c.Save(path))
			back := &Config{}
			require.NoError(t, back.Load(path))
			c.Profile = ""
			assert.Equal(t, c, back)
		})
	}
}
