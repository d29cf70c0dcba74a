package badger

import (
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/storetest"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) eventstore.Store {
	b := GetMemoryBackend()
	require.NoError(t, b.Init())
	return b
}

func TestBadgerStore(t *testing.T) { storetest.Run(t, openMemory) }

func TestCreatedAtKeyOrder(t *testing.T) {
	newer := createdAtKey(20, "bb")
	older := createdAtKey(10, "aa")
	sameA := createdAtKey(20, "aa")
	assert.Less(t, string(newer), string(older))
	assert.Less(t, string(sameA), string(newer))
	assert.Equal(t, "bb", idFromCreatedAtKey(newer))
}

func TestDiskPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	b := GetBackend(dir)
	require.NoError(t, b.Init())
	for i, at := range []timestamp.T{5, 9, 7} {
		_, err := b.InsertIfAbsent(context.Bg(), &event.T{
			ID: string(rune('a' + i)), PubKey: "p", CreatedAt: at,
			Kind: kind.TextNote, Sig: "00"})
		require.NoError(t, err)
	}
	require.NoError(t, b.Close())

	b = GetBackend(dir)
	require.NoError(t, b.Init())
	defer b.Close()
	var got []string
	require.NoError(t, b.All(context.Bg(), func(ev *event.T) error {
		got = append(got, ev.ID)
		return nil
	}))
	assert.Equal(t, []string{"b", "c", "a"}, got)
}
