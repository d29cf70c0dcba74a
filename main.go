package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Hubmakerlabs/sandboxr/app"
	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/interrupt"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/badger"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/sqldb"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/alexflint/go-arg"
)

var log, chk = slog.New(os.Stderr)

var args app.Config

// openStore picks the event store backend named in the configuration.
// Without a DSN the database lives in the profile directory.
func openStore(conf *app.Config, dataDir string) (store eventstore.Store,
	err error) {

	switch conf.EventStore {
	case sqldb.SQLite, "":
		dsn := conf.DSN
		if dsn == "" {
			dsn = filepath.Join(dataDir, "events.sqlite")
		}
		store = sqldb.New(sqldb.SQLite, dsn)
	case sqldb.Postgres:
		if conf.DSN == "" {
			return nil, fmt.Errorf("the postgres event store needs a --dsn")
		}
		store = sqldb.New(sqldb.Postgres, conf.DSN)
	case "badger":
		dir := conf.DSN
		if dir == "" {
			dir = filepath.Join(dataDir, "badger")
		}
		store = badger.GetBackend(dir)
	default:
		return nil, fmt.Errorf("unknown event store '%s'", conf.EventStore)
	}
	if err = store.Init(); chk.E(err) {
		return nil, err
	}
	return
}

func main() {
	arg.MustParse(&args)
	if args.LogLevel != "" && !slog.SetLogLevelString(args.LogLevel) {
		log.W.F("unknown log level '%s'", args.LogLevel)
	}
	log.T.S(args)
	var dataDirBase string
	var err error
	if dataDirBase, err = os.UserHomeDir(); chk.E(err) {
		os.Exit(1)
	}
	dataDir := filepath.Join(dataDirBase, args.Profile)
	log.D.F("using profile directory: %s", dataDir)
	if err = os.MkdirAll(dataDir, 0700); chk.E(err) {
		os.Exit(1)
	}
	configPath := filepath.Join(dataDir, "config.json")
	conf := args
	if args.InitCfgCmd != nil {
		if err = args.Save(configPath); chk.E(err) {
			log.E.F("failed to write relay configuration: '%s'", err)
			os.Exit(1)
		}
		log.I.Ln("wrote relay configuration to", configPath)
		return
	}
	// the configuration file, when present, replaces the relay settings
	// given on the command line
	if _, err = os.Stat(configPath); err == nil {
		if err = conf.Load(configPath); chk.E(err) {
			log.E.F("failed to load relay configuration: '%s'", err)
			os.Exit(1)
		}
	}
	var store eventstore.Store
	if store, err = openStore(&conf, dataDir); err != nil {
		log.E.F("unable to start database: '%s'", err)
		os.Exit(1)
	}
	inf := &relayinfo.T{
		Name:        conf.Name,
		Description: conf.Description,
		PubKey:      conf.Pubkey,
		Contact:     conf.Contact,
		Icon:        conf.Icon,
	}
	c, cancel := context.Cancel(context.Bg())
	rl := app.NewRelay(c, cancel, inf, &conf, store)
	switch {
	case conf.ImportCmd != nil:
		chk.E(rl.ImportFiles(c, conf.ImportCmd.FromFile))
		cancel()
		chk.E(store.Close())
	case conf.ExportCmd != nil:
		chk.E(rl.ExportFile(c, conf.ExportCmd.ToFile))
		cancel()
		chk.E(store.Close())
	default:
		interrupt.AddHandler(func() {
			sc, done := context.Timeout(context.Bg(), 5*time.Second)
			defer done()
			rl.Shutdown(sc)
			chk.E(store.Close())
		})
		if err = rl.Start(conf.Listen); chk.E(err) {
			os.Exit(1)
		}
		<-interrupt.HandlersDone
	}
}
