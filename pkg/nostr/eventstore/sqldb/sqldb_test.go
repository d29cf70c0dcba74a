package sqldb

import (
	"path/filepath"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/storetest"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) eventstore.Store {
	b := New(SQLite, Memory)
	require.NoError(t, b.Init())
	return b
}

func TestSQLiteStore(t *testing.T) { storetest.Run(t, openMemory) }

func TestSelectSQL(t *testing.T) {
	q := query.Translate(&filter.T{Kinds: []kind.T{1, 7},
		Since: timestamp.T(10).Ptr()}, query.Limits{})
	assert.Equal(t, "SELECT id, pubkey, created_at, kind, tags, content, sig "+
		"FROM event WHERE kind IN (?,?) AND created_at >= ? "+
		"ORDER BY created_at DESC, id ASC LIMIT ?", SelectSQL(q))
	assert.Equal(t, "SELECT id, pubkey, created_at, kind, tags, content, sig "+
		"FROM event ORDER BY created_at DESC, id ASC LIMIT ?",
		SelectSQL(query.Translate(&filter.T{}, query.Limits{})))
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.sqlite")
	b := New(SQLite, path)
	require.NoError(t, b.Init())
	e := &event.T{ID: "ab", PubKey: "p", CreatedAt: 3, Kind: kind.TextNote,
		Content: "kept", Sig: "00"}
	_, err := b.InsertIfAbsent(context.Bg(), e)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b = New(SQLite, path)
	require.NoError(t, b.Init())
	defer b.Close()
	var got []string
	require.NoError(t, b.All(context.Bg(), func(ev *event.T) error {
		got = append(got, ev.Content)
		return nil
	}))
	assert.Equal(t, []string{"kept"}, got)
}
