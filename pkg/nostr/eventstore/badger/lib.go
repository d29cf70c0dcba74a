// Package badger is an embedded event store on badger/v4.
//
// Two key spaces are kept:
//
//	'e' | id                                  -> event JSON
//	'c' | be64(MaxInt64 - created_at) | id    -> nothing
//
// A forward scan of the 'c' prefix therefore visits events newest first with
// ties in ascending id order, which is the order every scan must return.
package badger

import (
	"os"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

var log, chk = slog.New(os.Stderr)

var _ eventstore.Store = (*Backend)(nil)

type Backend struct {
	// Path is the directory holding the database files. Ignored when
	// InMemory is set.
	Path     string
	InMemory bool
	// BlockCacheSize is passed to badger; zero keeps its default.
	BlockCacheSize int
	// DB is the badger db interface
	*badger.DB
}

// GetBackend returns a Backend stored at path that still needs Init.
func GetBackend(path string) *Backend { return &Backend{Path: path} }

// GetMemoryBackend returns a Backend that keeps everything in memory.
func GetMemoryBackend() *Backend { return &Backend{InMemory: true} }

func (b *Backend) Init() (err error) {
	var opts badger.Options
	if b.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		log.I.Ln("opening badger event store at", b.Path)
		opts = badger.DefaultOptions(b.Path)
		opts.Compression = options.ZSTD
		opts.CompactL0OnClose = true
	}
	if b.BlockCacheSize > 0 {
		opts.BlockCacheSize = int64(b.BlockCacheSize)
	}
	opts = opts.WithLogger(nil)
	if b.DB, err = badger.Open(opts); chk.E(err) {
		return eventstore.Unavailable(err)
	}
	return
}

func (b *Backend) Close() (err error) {
	if b.DB == nil {
		return
	}
	err = b.DB.Close()
	b.DB = nil
	return
}

func (b *Backend) Update(fn func(txn *badger.Txn) (err error)) (err error) {
	if b.DB == nil {
		return eventstore.Unavailable(eventstore.ErrClosed)
	}
	return eventstore.Unavailable(b.DB.Update(fn))
}

func (b *Backend) View(fn func(txn *badger.Txn) (err error)) (err error) {
	if b.DB == nil {
		return eventstore.Unavailable(eventstore.ErrClosed)
	}
	return eventstore.Unavailable(b.DB.View(fn))
}
