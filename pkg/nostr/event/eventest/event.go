// Package eventest generates signed events for tests.
package eventest

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/nbd-wtf/go-nostr"
)

// Signer holds a generated key pair.
type Signer struct {
	Sec, Pub string
}

// NewSigner generates a fresh key pair.
func NewSigner() (s *Signer) {
	s = &Signer{Sec: nostr.GeneratePrivateKey()}
	s.Pub, _ = nostr.GetPublicKey(s.Sec)
	return
}

// Event builds and signs an event. It panics on a signing failure, which
// only happens with a malformed key.
func (s *Signer) Event(k kind.T, createdAt timestamp.T, content string,
	t tags.T) (ev *event.T) {

	ev = &event.T{
		CreatedAt: createdAt,
		Kind:      k,
		Tags:      t,
		Content:   content,
	}
	if err := ev.Sign(s.Sec); err != nil {
		panic(err)
	}
	return
}

// Unsigned builds an event with the given literal id and pubkey and no
// signature, for use where the verifier is stubbed out.
func Unsigned(id, pubkey string, k kind.T, createdAt timestamp.T,
	content string, t tags.T) *event.T {

	return &event.T{
		ID:        id,
		PubKey:    pubkey,
		CreatedAt: createdAt,
		Kind:      k,
		Tags:      t,
		Content:   content,
	}
}
