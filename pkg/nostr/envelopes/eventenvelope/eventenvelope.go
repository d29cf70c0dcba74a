package eventenvelope

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
)

// T is the wrapper expected by a relay to contain an event, or sent by a relay
// with the subscription the event matched.
type T struct {
	// SubscriptionID is empty when a client publishes.
	SubscriptionID string
	Event          *event.T
}

var _ enveloper.I = (*T)(nil)

// New creates a relay-to-client envelope for a subscription.
func New(subID string, ev *event.T) *T {
	return &T{SubscriptionID: subID, Event: ev}
}

func (env *T) Label() string { return labels.EVENT }

func (env *T) ToArray() (arr []any) {
	arr = []any{labels.EVENT}
	if env.SubscriptionID != "" {
		arr = append(arr, env.SubscriptionID)
	}
	return append(arr, env.Event)
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) Bytes() []byte { return enveloper.Marshal(env.ToArray()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

// Unmarshal accepts both ["EVENT", ev] and ["EVENT", subID, ev].
func (env *T) Unmarshal(elems []json.RawMessage) (err error) {
	if err = enveloper.Want(labels.EVENT, elems, 1, 2); err != nil {
		return
	}
	if len(elems) == 2 {
		if env.SubscriptionID, err = enveloper.SubscriptionID(
			elems[0]); err != nil {
			return
		}
		elems = elems[1:]
	}
	raw := elems[0]
	if len(raw) == 0 || raw[0] != '{' {
		return enveloper.Invalid("event is not an object")
	}
	ev := &event.T{}
	if err = json.Unmarshal(raw, ev); err != nil {
		return enveloper.Invalid("malformed event: %s", err)
	}
	env.Event = ev
	return
}
