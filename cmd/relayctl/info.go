package main

import (
	"encoding/json"
	"fmt"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
	"github.com/urfave/cli/v2"
)

var getRelayInfo = &cli.Command{
	Name:  "info",
	Usage: "gets the information document for the given relay, as JSON",
	Description: `example:
		relayctl info localhost:3334`,
	ArgsUsage: "<relay-url>",
	Action: func(c *cli.Context) error {
		url := c.Args().First()
		if url == "" {
			return fmt.Errorf("specify the <relay-url>")
		}
		info, err := relayinfo.Fetch(c.Context, url)
		if err != nil {
			return fmt.Errorf("failed to fetch '%s' information document: %w",
				url, err)
		}
		pretty, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(pretty))
		return nil
	},
}
