package relayinfo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
)

var log, chk = slog.New(os.Stderr)

// HTTPURL turns a relay address into the http(s) URL the document is served
// on. Bare hosts are assumed to be wss.
func HTTPURL(u string) (s string, err error) {
	if !strings.HasPrefix(u, "http") && !strings.HasPrefix(u, "ws") {
		u = "wss://" + u
	}
	var p *url.URL
	if p, err = url.Parse(u); err != nil {
		return "", fmt.Errorf("cannot parse url: %s", u)
	}
	switch p.Scheme {
	case "ws":
		p.Scheme = "http"
	case "wss":
		p.Scheme = "https"
	}
	p.Path = strings.TrimRight(p.Path, "/")
	return p.String(), nil
}

// Fetch fetches the NIP-11 Info.
func Fetch(c context.T, u string) (info *T, err error) {
	if _, ok := c.Deadline(); !ok {
		// if no timeout is set, force it to 7 seconds
		var cancel context.F
		c, cancel = context.Timeout(c, 7*time.Second)
		defer cancel()
	}
	if u, err = HTTPURL(u); err != nil {
		return
	}
	var req *http.Request
	if req, err = http.NewRequestWithContext(c, http.MethodGet, u,
		nil); chk.E(err) {
		return
	}
	req.Header.Add("Accept", MIME)
	var resp *http.Response
	if resp, err = http.DefaultClient.Do(req); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay info request to %s: %s", u, resp.Status)
	}
	info = &T{}
	if err = json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	log.D.F("fetched relay info from %s", u)
	return
}
