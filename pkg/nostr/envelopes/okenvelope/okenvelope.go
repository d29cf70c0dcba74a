package okenvelope

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
)

type Reason string

const (
	Duplicate   Reason = "duplicate"
	Blocked     Reason = "blocked"
	RateLimited Reason = "rate-limited"
	Invalid     Reason = "invalid"
	Error       Reason = "error"
)

// Message prefixes a human readable message with the machine readable reason.
func (r Reason) Message(msg string) string { return string(r) + ": " + msg }

// T is a relay message sent in response to an EVENT to indicate acceptance
// (OK is true) or rejection, with Reason a machine readable prefix, ": " and a
// human readable message.
type T struct {
	ID     string
	OK     bool
	Reason string
}

var _ enveloper.I = (*T)(nil)

func New(eventID string, ok bool, reason string) *T {
	return &T{ID: eventID, OK: ok, Reason: reason}
}

func (env *T) Label() string { return labels.OK }

func (env *T) ToArray() []any {
	return []any{labels.OK, env.ID, env.OK, env.Reason}
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) Bytes() []byte { return enveloper.Marshal(env.ToArray()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) Unmarshal(elems []json.RawMessage) (err error) {
	if err = enveloper.Want(labels.OK, elems, 3, 3); err != nil {
		return
	}
	if env.ID, err = enveloper.String(elems[0], "event id"); err != nil {
		return
	}
	if err = json.Unmarshal(elems[1], &env.OK); err != nil {
		return enveloper.Invalid("OK flag is not a boolean")
	}
	env.Reason, err = enveloper.String(elems[2], "OK message")
	return
}
