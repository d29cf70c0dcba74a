package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/urfave/cli/v2"
)

var publish = &cli.Command{
	Name:  "event",
	Usage: "generates a signed event and optionally publishes it to relays",
	Description: `outputs a signed event. when relays are given the event is sent to each of them and the OK they answer with is printed.

example:
		relayctl event -c 'hello' ws://localhost:3334`,
	Flags: []cli.Flag{
		secFlag,
		&cli.IntFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "event kind",
			Value:   int(kind.TextNote),
		},
		&cli.StringFlag{
			Name:    "content",
			Aliases: []string{"c"},
			Usage:   "event content",
		},
		&cli.StringSliceFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "sets a tag like -t e=<id>, can be used multiple times",
		},
		&cli.StringSliceFlag{
			Name:  "e",
			Usage: "shortcut for --tag e=<value>",
		},
		&cli.StringFlag{
			Name:        "created-at",
			Aliases:     []string{"time", "ts"},
			Usage:       "unix timestamp value for the created_at field",
			DefaultText: "now",
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
			Kind:      kind.T(c.Int("kind")),
			Content:   c.String("content"),
		}
		if ts := c.String("created-at"); ts != "" && ts != "now" {
			var i int64
			if i, err = strconv.ParseInt(ts, 10, 64); err != nil {
				return fmt.Errorf("invalid --created-at '%s'", ts)
			}
			ev.CreatedAt = timestamp.T(i)
		}
		if ev.Tags, err = tagsFromFlags(c); err != nil {
			return
		}
		if err = ev.Sign(sec); err != nil {
			return fmt.Errorf("error signing with provided key: %w", err)
		}
		return publishToRelays(c, ev)
	},
}

func tagsFromFlags(c *cli.Context) (t tags.T, err error) {
	t = tags.T{}
	for _, tagFlag := range c.StringSlice("tag") {
		key, value, found := strings.Cut(tagFlag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --tag '%s'", tagFlag)
		}
		t = append(t, tag.T{key, value})
	}
	for _, etag := range c.StringSlice("e") {
		t = append(t, tag.T{"e", etag})
	}
	return
}

// publishToRelays prints the event, then sends it to every relay named on
// the command line and prints what each answered.
func publishToRelays(c *cli.Context, ev *event.T) (err error) {
	fmt.Println(ev)
	var failed int
	for _, u := range c.Args().Slice() {
		var r *relayConn
		if r, err = dial(c.Context, u); err != nil {
			log.E.Ln(err)
			failed++
			continue
		}
		ok, perr := r.Publish(ev)
		r.Close()
		switch {
		case perr != nil:
			log.E.F("%s: %s", r.URL, perr)
			failed++
		case ok.OK:
			log.I.F("%s: accepted %s", r.URL, ok.Reason)
		default:
			log.E.F("%s: rejected %s", r.URL, ok.Reason)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to publish to %d of %d relays", failed,
			c.Args().Len())
	}
	return nil
}
