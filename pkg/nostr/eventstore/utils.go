package eventstore

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
)

// Coordinate addresses a replaceable event as <kind>:<pubkey>:<d-tag>, the
// value form of an "a" tag.
type Coordinate struct {
	Kind   kind.T
	PubKey string
	D      string
}

// ParseCoordinate decodes an "a" tag value. The pubkey must be 32 bytes of
// hex.
func ParseCoordinate(tagValue string) (c Coordinate, ok bool) {
	split := strings.SplitN(tagValue, ":", 3)
	if len(split) != 3 {
		return
	}
	if pkb, err := hex.DecodeString(split[1]); err != nil || len(pkb) != 32 {
		return
	}
	k, err := strconv.ParseUint(split[0], 10, 16)
	if err != nil {
		return
	}
	return Coordinate{Kind: kind.T(k), PubKey: split[1], D: split[2]}, true
}
