package main

import (
	"fmt"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/urfave/cli/v2"
)

var del = &cli.Command{
	Name:  "delete",
	Usage: "asks relays to retract events published with the same key",
	Description: `publishes a kind 5 deletion event referencing the given event ids.

example:
		relayctl delete -e <id> -e <id> --reason 'typo' ws://localhost:3334`,
	Flags: []cli.Flag{
		secFlag,
		&cli.StringSliceFlag{
			Name:     "e",
			Aliases:  []string{"id"},
			Usage:    "id of an event to delete, can be used multiple times",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "reason",
			Usage: "text to put in the deletion event content",
		},
	},
	ArgsUsage: "[relay...]",
	Action: func(c *cli.Context) (err error) {
		var sec string
		if sec, err = gatherSecretKeyFromArguments(c); err != nil {
			return
		}
		ev := &event.T{
			CreatedAt: timestamp.Now(),
			Kind:      kind.Deletion,
			Content:   c.String("reason"),
			Tags:      tags.T{},
		}
		for _, id := range c.StringSlice("e") {
			ev.Tags = append(ev.Tags, tag.T{"e", id})
		}
		if err = ev.Sign(sec); err != nil {
			return fmt.Errorf("error signing with provided key: %w", err)
		}
		return publishToRelays(c, ev)
	},
}
