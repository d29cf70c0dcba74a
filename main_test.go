package main

import (
	"testing"

	"github.com/Hubmakerlabs/sandboxr/app"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/badger"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	store, err := openStore(&app.Config{EventStore: "sqlite"}, dir)
	require.NoError(t, err)
	assert.IsType(t, &sqldb.Backend{}, store)
	require.NoError(t, store.Close())

	store, err = openStore(&app.Config{EventStore: "badger"}, dir)
	require.NoError(t, err)
	assert.IsType(t, &badger.Backend{}, store)
	require.NoError(t, store.Close())

	_, err = openStore(&app.Config{EventStore: "postgres"}, dir)
	assert.Error(t, err)
	_, err = openStore(&app.Config{EventStore: "mongo"}, dir)
	assert.Error(t, err)
}
