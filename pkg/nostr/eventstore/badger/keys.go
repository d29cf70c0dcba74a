package badger

import (
	"encoding/binary"
	"math"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
)

const (
	prefixEvent     byte = 'e'
	prefixCreatedAt byte = 'c'
)

func eventKey(id string) (k []byte) {
	k = make([]byte, 0, 1+len(id))
	k = append(k, prefixEvent)
	return append(k, id...)
}

func createdAtKey(createdAt timestamp.T, id string) (k []byte) {
	k = make([]byte, 1+8, 1+8+len(id))
	k[0] = prefixCreatedAt
	binary.BigEndian.PutUint64(k[1:], uint64(math.MaxInt64-createdAt.I64()))
	return append(k, id...)
}

// idFromCreatedAtKey returns the event id carried in a created_at index key.
func idFromCreatedAtKey(k []byte) string {
	if len(k) < 9 {
		return ""
	}
	return string(k[9:])
}
