package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nbd-wtf/go-nostr/nip19"
	"github.com/urfave/cli/v2"
	"lukechampine.com/frand"
)

var secFlag = &cli.StringFlag{
	Name:        "sec",
	Usage:       "secret key to sign the event with, as hex or nsec",
	DefaultText: "the key '1'",
	Value:       "0000000000000000000000000000000000000000000000000000000000000001",
	EnvVars:     []string{"NOSTR_SECRET_KEY"},
}

func gatherSecretKeyFromArguments(c *cli.Context) (sec string, err error) {
	sec = c.String("sec")
	if strings.HasPrefix(sec, "nsec1") {
		var value any
		if _, value, err = nip19.Decode(sec); err != nil {
			return "", fmt.Errorf("invalid nsec: %w", err)
		}
		sec = value.(string)
	}
	if len(sec) > 64 {
		return "", fmt.Errorf("invalid secret key: too large")
	}
	// left-pad
	sec = strings.Repeat("0", 64-len(sec)) + sec
	if _, err = hex.DecodeString(sec); err != nil {
		return "", fmt.Errorf("invalid secret key")
	}
	return
}

// newSubscriptionID makes a random subscription id.
func newSubscriptionID() string { return "relayctl-" + hex.EncodeToString(frand.Bytes(6)) }
