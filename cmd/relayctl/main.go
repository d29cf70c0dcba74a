// Command relayctl publishes events to, queries and inspects a relay.
package main

import (
	"fmt"
	"os"

	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/urfave/cli/v2"
)

var log, chk = slog.New(os.Stderr)

var app = &cli.App{
	Name:  "relayctl",
	Usage: "publish, query and delete events on a relay",
	Commands: []*cli.Command{
		publish,
		req,
		del,
		getRelayInfo,
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "silent",
			Usage:   "do not print logs and info messages to stderr",
			Aliases: []string{"q"},
			Action: func(ctx *cli.Context, b bool) error {
				if b {
					slog.SetLogLevel(slog.Off)
				}
				return nil
			},
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
