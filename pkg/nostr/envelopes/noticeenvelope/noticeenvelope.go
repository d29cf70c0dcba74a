package noticeenvelope

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
)

// T is a human readable message from the relay.
type T struct {
	Text string
}

var _ enveloper.I = (*T)(nil)

func New(text string) *T { return &T{Text: text} }

func (env *T) Label() string { return labels.NOTICE }

func (env *T) ToArray() []any { return []any{labels.NOTICE, env.Text} }

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) Bytes() []byte { return enveloper.Marshal(env.ToArray()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) Unmarshal(elems []json.RawMessage) (err error) {
	if err = enveloper.Want(labels.NOTICE, elems, 1, 1); err != nil {
		return
	}
	env.Text, err = enveloper.String(elems[0], "notice")
	return
}
