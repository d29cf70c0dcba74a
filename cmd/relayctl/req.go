package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/closeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eoseenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/eventenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/noticeenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/envelopes/reqenvelope"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/urfave/cli/v2"
)

const CategoryFilterAttributes = "FILTER ATTRIBUTES"

var req = &cli.Command{
	Name:  "req",
	Usage: "generates encoded REQ messages and optionally uses them to query a relay",
	Description: `outputs a filter. when a relay is not given, will print the REQ, otherwise will connect to the relay, send it and print the events that come back.

example:
		relayctl req -k 1 -l 15 ws://localhost:3334
		relayctl req --search 'sale' --stream ws://localhost:3334`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "author",
			Aliases:  []string{"a"},
			Usage:    "only accept events from these authors (pubkey as hex)",
			Category: CategoryFilterAttributes,
		},
		&cli.StringSliceFlag{
			Name:     "id",
			Aliases:  []string{"i"},
			Usage:    "only accept events with these ids (hex)",
			Category: CategoryFilterAttributes,
		},
		&cli.IntSliceFlag{
			Name:     "kind",
			Aliases:  []string{"k"},
			Usage:    "only accept events with these kind numbers",
			Category: CategoryFilterAttributes,
		},
		&cli.StringFlag{
			Name:     "since",
			Aliases:  []string{"s"},
			Usage:    "only accept events newer than this (unix timestamp or 'now')",
			Category: CategoryFilterAttributes,
		},
		&cli.StringFlag{
			Name:     "until",
			Aliases:  []string{"u"},
			Usage:    "only accept events older than this (unix timestamp or 'now')",
			Category: CategoryFilterAttributes,
		},
		&cli.IntFlag{
			Name:     "limit",
			Aliases:  []string{"l"},
			Usage:    "only accept up to this number of events",
			Category: CategoryFilterAttributes,
		},
		&cli.StringFlag{
			Name:     "search",
			Usage:    "only accept events whose content contains this text",
			Category: CategoryFilterAttributes,
		},
		&cli.BoolFlag{
			Name:        "stream",
			Usage:       "keep the subscription open, printing all events as they are returned",
			DefaultText: "false, will close on EOSE",
		},
		&cli.BoolFlag{
			Name:  "bare",
			Usage: "when printing the filter, print just the filter, not enveloped in a [\"REQ\", ...] array",
		},
	},
	ArgsUsage: "[relay]",
	Action: func(c *cli.Context) (err error) {
		var f *filter.T
		if f, err = filterFromFlags(c); err != nil {
			return
		}
		u := c.Args().First()
		if u == "" {
			// no relay given, will just print the filter
			if c.Bool("bare") {
				fmt.Println(f)
			} else {
				fmt.Println(reqenvelope.New("relayctl", f))
			}
			return
		}
		var r *relayConn
		if r, err = dial(c.Context, u); err != nil {
			return
		}
		defer r.Close()
		subID := newSubscriptionID()
		if err = r.Send(reqenvelope.New(subID, f)); err != nil {
			return
		}
		for {
			var env enveloper.I
			if env, err = r.Receive(); err != nil {
				return
			}
			switch e := env.(type) {
			case *eventenvelope.T:
				if e.SubscriptionID == subID {
					fmt.Println(e.Event)
				}
			case *eoseenvelope.T:
				if e.SubscriptionID != subID {
					continue
				}
				log.D.Ln("end of stored events")
				if !c.Bool("stream") {
					return r.Send(closeenvelope.New(subID))
				}
			case *noticeenvelope.T:
				return fmt.Errorf("%s: %s", r.URL, e.Text)
			}
		}
	},
}

func parseTimestamp(s string) (ts *timestamp.T, err error) {
	if s == "" {
		return
	}
	if s == "now" {
		return timestamp.Now().Ptr(), nil
	}
	var i int64
	if i, err = strconv.ParseInt(s, 10, 64); err != nil {
		return nil, fmt.Errorf("parse error: Invalid numeric literal %q", s)
	}
	return timestamp.T(i).Ptr(), nil
}

func filterFromFlags(c *cli.Context) (f *filter.T, err error) {
	f = &filter.T{}
	f.Authors = append(f.Authors, c.StringSlice("author")...)
	f.IDs = append(f.IDs, c.StringSlice("id")...)
	for _, k := range c.IntSlice("kind") {
		f.Kinds = append(f.Kinds, kind.T(k))
	}
	if search := c.String("search"); search != "" {
		f.Search = &search
	}
	if f.Since, err = parseTimestamp(c.String("since")); err != nil {
		return
	}
	if f.Until, err = parseTimestamp(c.String("until")); err != nil {
		return
	}
	if limit := c.Int("limit"); limit != 0 {
		f.Limit = &limit
	}
	// round trip through the parser so the relay's validation applies here too
	var b []byte
	if b, err = json.Marshal(f); err != nil {
		return
	}
	return filter.Parse(b)
}
