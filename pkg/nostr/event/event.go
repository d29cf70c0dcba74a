package event

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/minio/sha256-simd"
	"github.com/nbd-wtf/go-nostr"
)

var log, chk = slog.New(os.Stderr)

// T is the primary datatype of nostr. This is the form of the structure that
// defines its JSON string based format.
type T struct {
	// ID is the SHA256 hash of the canonical encoding of the event
	ID string `json:"id"`
	// PubKey is the public key of the event creator in hexadecimal format
	PubKey string `json:"pubkey"`
	// CreatedAt is the UNIX timestamp of the event according to the event
	// creator (never trust a timestamp!)
	CreatedAt timestamp.T `json:"created_at"`
	// Kind is the category of the event. See kind.T
	Kind kind.T `json:"kind"`
	// Tags are a list of tags, which are a list of strings, the first being
	// the tag name.
	Tags tags.T `json:"tags"`
	// Content is an arbitrary string, usually conforming to a specification
	// relating to the Kind and the Tags.
	Content string `json:"content"`
	// Sig is the signature on the ID hash that validates as coming from the
	// PubKey.
	Sig string `json:"sig"`
}

// Ts is an ordered batch of events, as returned by a store scan.
type Ts []*T

// Verifier decides whether an event's id and signature are consistent with
// its other fields.
type Verifier func(ev *T) bool

type plain T

// MarshalJSON writes the event with an empty tag list rather than null.
func (ev *T) MarshalJSON() (b []byte, err error) {
	p := plain(*ev)
	if p.Tags == nil {
		p.Tags = tags.T{}
	}
	return json.Marshal(&p)
}

// String returns the JSON form of the event.
func (ev *T) String() string {
	b, err := json.Marshal(ev)
	if chk.E(err) {
		return ""
	}
	return string(b)
}

// ToNostr converts the event into the go-nostr form used for canonical
// serialization, signing and signature checks.
func (ev *T) ToNostr() (ne *nostr.Event) {
	ne = &nostr.Event{
		ID:        ev.ID,
		PubKey:    ev.PubKey,
		CreatedAt: nostr.Timestamp(ev.CreatedAt),
		Kind:      int(ev.Kind),
		Tags:      make(nostr.Tags, 0, len(ev.Tags)),
		Content:   ev.Content,
		Sig:       ev.Sig,
	}
	for _, t := range ev.Tags {
		ne.Tags = append(ne.Tags, nostr.Tag(t.Clone()))
	}
	return
}

// FromNostr converts a go-nostr event into an event.T.
func FromNostr(ne *nostr.Event) (ev *T) {
	ev = &T{
		ID:        ne.ID,
		PubKey:    ne.PubKey,
		CreatedAt: timestamp.T(ne.CreatedAt),
		Kind:      kind.T(ne.Kind),
		Tags:      make(tags.T, 0, len(ne.Tags)),
		Content:   ne.Content,
		Sig:       ne.Sig,
	}
	for _, t := range ne.Tags {
		ev.Tags = append(ev.Tags, tag.T(t).Clone())
	}
	return
}

// Serialize returns the canonical form that the ID is the hash of:
//
//	[0,<pubkey>,<created_at>,<kind>,<tags>,<content>]
func (ev *T) Serialize() []byte { return ev.ToNostr().Serialize() }

// GetIDBytes returns the raw SHA256 hash of the canonical form of the event.
func (ev *T) GetIDBytes() []byte {
	h := sha256.Sum256(ev.Serialize())
	return h[:]
}

// GetID returns the hex encoded hash of the canonical form of the event.
func (ev *T) GetID() string { return hex.EncodeToString(ev.GetIDBytes()) }

// CheckID reports whether the ID field matches the event content.
func (ev *T) CheckID() bool { return ev.ID == ev.GetID() }

// CheckSignature checks if the signature is valid for the id. It returns an
// error if the pubkey or the signature cannot be decoded.
func (ev *T) CheckSignature() (valid bool, err error) {
	if valid, err = ev.ToNostr().CheckSignature(); chk.D(err) {
		return
	}
	return
}

// Verify is the default Verifier: the ID must be the hash of the canonical
// form, and the signature must be a valid schnorr signature by PubKey on it.
func Verify(ev *T) (ok bool) {
	if ev == nil {
		return
	}
	if !ev.CheckID() {
		log.D.F("id mismatch got %s, expected %s", ev.ID, ev.GetID())
		return
	}
	var err error
	if ok, err = ev.CheckSignature(); err != nil {
		return false
	}
	return
}

// Sign sets the PubKey, ID and Sig fields of the event using the hex encoded
// secret key.
func (ev *T) Sign(sk string) (err error) {
	ne := ev.ToNostr()
	if ne.PubKey, err = nostr.GetPublicKey(sk); chk.E(err) {
		return
	}
	if err = ne.Sign(sk); chk.E(err) {
		return
	}
	ev.PubKey, ev.ID, ev.Sig = ne.PubKey, ne.ID, ne.Sig
	return
}

// Clone returns a deep copy of the event.
func (ev *T) Clone() (c *T) {
	c = &T{}
	*c = *ev
	c.Tags = ev.Tags.Clone()
	return
}
