package reqenvelope

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
)

// T is the wrapper for a query to a relay.
type T struct {
	SubscriptionID string
	Filters        []*filter.T
}

var _ enveloper.I = (*T)(nil)

func New(subID string, filters ...*filter.T) *T {
	return &T{SubscriptionID: subID, Filters: filters}
}

func (env *T) Label() string { return labels.REQ }

func (env *T) ToArray() (arr []any) {
	arr = []any{labels.REQ, env.SubscriptionID}
	for _, f := range env.Filters {
		arr = append(arr, f)
	}
	return
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) Bytes() []byte { return enveloper.Marshal(env.ToArray()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

// Unmarshal reads the subscription id and any number of filters, including
// none; whether an empty list is acceptable is up to the receiver.
func (env *T) Unmarshal(elems []json.RawMessage) (err error) {
	if err = enveloper.Want(labels.REQ, elems, 1, -1); err != nil {
		return
	}
	if env.SubscriptionID, err = enveloper.SubscriptionID(elems[0]); err != nil {
		return
	}
	env.Filters = make([]*filter.T, 0, len(elems)-1)
	for _, raw := range elems[1:] {
		var f *filter.T
		if f, err = filter.Parse(raw); err != nil {
			return
		}
		env.Filters = append(env.Filters, f)
	}
	return
}
