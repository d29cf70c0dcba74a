package closeenvelope

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
)

// T ends a subscription.
type T struct {
	SubscriptionID string
}

var _ enveloper.I = (*T)(nil)

func New(subID string) *T { return &T{SubscriptionID: subID} }

func (env *T) Label() string { return labels.CLOSE }

func (env *T) ToArray() []any { return []any{labels.CLOSE, env.SubscriptionID} }

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) Bytes() []byte { return enveloper.Marshal(env.ToArray()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) Unmarshal(elems []json.RawMessage) (err error) {
	if err = enveloper.Want(labels.CLOSE, elems, 1, 1); err != nil {
		return
	}
	env.SubscriptionID, err = enveloper.SubscriptionID(elems[0])
	return
}
