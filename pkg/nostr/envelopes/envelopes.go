// Package envelopes decodes the JSON array messages exchanged between clients
// and relays into their typed envelope.
package envelopes

import (
	"encoding/json"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/labels"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/okenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
)

// ErrInvalid is wrapped by every decoding error; filter errors wrap
// filter.ErrValidation instead.
var ErrInvalid = enveloper.ErrInvalid

// Parse identifies a message by its label and decodes it.
func Parse(b []byte) (env enveloper.I, err error) {
	var label string
	var elems []json.RawMessage
	if label, elems, err = enveloper.Split(b); err != nil {
		return
	}
	switch label {
	case labels.EVENT:
		env = &eventenvelope.T{}
	case labels.REQ:
		env = &reqenvelope.T{}
	case labels.CLOSE:
		env = &closeenvelope.T{}
	case labels.OK:
		env = &okenvelope.T{}
	case labels.EOSE:
		env = &eoseenvelope.T{}
	case labels.NOTICE:
		env = &noticeenvelope.T{}
	default:
		return nil, enveloper.Invalid("unknown message type %q", label)
	}
	if err = env.Unmarshal(elems); err != nil {
		return nil, err
	}
	return
}
