package relayinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSupportedNIP(t *testing.T) {
	ri := &T{}
	for _, n := range []int{11, 1, 50, 9, 11, 1} {
		ri.AddSupportedNIP(n)
	}
	assert.Equal(t, []int{1, 9, 11, 50}, ri.SupportedNIPs)
}

func TestHTTPURL(t *testing.T) {
	for in, want := range map[string]string{
		"relay.example.com":     "https://relay.example.com",
		"ws://localhost:3334/":  "http://localhost:3334",
		"wss://r.example/path/": "https://r.example/path",
		"http://127.0.0.1:1234": "http://127.0.0.1:1234",
	} {
		got, err := HTTPURL(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, MIME, r.Header.Get("Accept"))
			w.Header().Set("Content-Type", MIME)
			_ = json.NewEncoder(w).Encode(&T{Name: "test relay",
				SupportedNIPs: []int{1, 11},
				Limitation:    &Limits{MaxLimit: 500}})
		}))
	defer srv.Close()
	info, err := Fetch(context.Bg(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "test relay", info.Name)
	assert.Equal(t, []int{1, 11}, info.SupportedNIPs)
	assert.Equal(t, 500, info.Limitation.MaxLimit)
}
