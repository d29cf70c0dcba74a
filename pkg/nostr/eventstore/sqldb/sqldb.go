// Package sqldb is an event store on a SQL database through sqlx. SQLite
// (modernc.org/sqlite, pure Go) is the default; Postgres is reached through
// lib/pq with the same statements rebound to its placeholder style.
package sqldb

import (
	"encoding/json"
	"os"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore/query"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var log, chk = slog.New(os.Stderr)

const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	// Memory is the SQLite DSN for a private in-memory database.
	Memory = ":memory:"
)

var _ eventstore.Store = (*Backend)(nil)

// Backend stores events in a single table named event.
type Backend struct {
	// Driver is SQLite or Postgres.
	Driver string
	// DSN is the file path (or Memory) for SQLite, or a connection URL for
	// Postgres.
	DSN string
	*sqlx.DB
}

// New returns a Backend that still needs Init.
func New(driver, dsn string) *Backend { return &Backend{Driver: driver, DSN: dsn} }

type row struct {
	ID        string `db:"id"`
	PubKey    string `db:"pubkey"`
	CreatedAt int64  `db:"created_at"`
	Kind      int64  `db:"kind"`
	Tags      string `db:"tags"`
	Content   string `db:"content"`
	Sig       string `db:"sig"`
}

func (r *row) toEvent() (ev *event.T, err error) {
	ev = &event.T{
		ID:        r.ID,
		PubKey:    r.PubKey,
		CreatedAt: timestamp.T(r.CreatedAt),
		Kind:      kind.T(r.Kind),
		Content:   r.Content,
		Sig:       r.Sig,
	}
	var t tags.T
	if err = json.Unmarshal([]byte(r.Tags), &t); err != nil {
		return nil, err
	}
	ev.Tags = t
	return
}

func (b *Backend) Init() (err error) {
	if b.Driver == "" {
		b.Driver = SQLite
	}
	if b.DB, err = sqlx.Open(b.Driver, b.DSN); chk.E(err) {
		return eventstore.Unavailable(err)
	}
	if b.Driver == SQLite {
		// one connection: a :memory: database lives and dies with its
		// connection.
		b.DB.SetMaxOpenConns(1)
	}
	if err = b.DB.Ping(); chk.E(err) {
		return eventstore.Unavailable(err)
	}
	if err = b.ensureSchema(); chk.E(err) {
		return eventstore.Unavailable(err)
	}
	log.D.F("opened %s event store %s", b.Driver, b.DSN)
	return
}

func (b *Backend) ensureSchema() (err error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS event (
			id TEXT PRIMARY KEY,
			pubkey TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			kind BIGINT NOT NULL,
			tags TEXT NOT NULL,
			content TEXT NOT NULL,
			sig TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS event_created_at_id ON event (created_at DESC, id)`,
		`CREATE INDEX IF NOT EXISTS event_pubkey ON event (pubkey)`,
		`CREATE INDEX IF NOT EXISTS event_kind ON event (kind)`,
	}
	for _, s := range stmts {
		if _, err = b.DB.Exec(s); err != nil {
			return
		}
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

func (b *Backend) InsertIfAbsent(c context.T, ev *event.T) (o eventstore.Outcome,
	err error) {

	if b.DB == nil {
		return o, eventstore.Unavailable(eventstore.ErrClosed)
	}
	t := ev.Tags
	if t == nil {
		t = tags.T{}
	}
	var tb []byte
	if tb, err = json.Marshal(t); chk.E(err) {
		return
	}
	res, err := b.DB.ExecContext(c, b.DB.Rebind(`INSERT INTO event
		(id, pubkey, created_at, kind, tags, content, sig)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`),
		ev.ID, ev.PubKey, ev.CreatedAt.I64(), int64(ev.Kind), string(tb),
		ev.Content, ev.Sig)
	if chk.E(err) {
		return o, eventstore.Unavailable(err)
	}
	var n int64
	if n, err = res.RowsAffected(); chk.E(err) {
		return o, eventstore.Unavailable(err)
	}
	if n == 0 {
		return eventstore.AlreadyExists, nil
	}
	return eventstore.Inserted, nil
}

func (b *Backend) DeleteOwned(c context.T, pubkey string,
	ids []string) (count int, err error) {

	if len(ids) == 0 {
		return
	}
	if b.DB == nil {
		return 0, eventstore.Unavailable(eventstore.ErrClosed)
	}
	var q string
	var args []any
	if q, args, err = sqlx.In(`DELETE FROM event WHERE pubkey = ? AND id IN (?)`,
		pubkey, ids); chk.E(err) {
		return
	}
	res, err := b.DB.ExecContext(c, b.DB.Rebind(q), args...)
	if chk.E(err) {
		return 0, eventstore.Unavailable(err)
	}
	var n int64
	if n, err = res.RowsAffected(); chk.E(err) {
		return 0, eventstore.Unavailable(err)
	}
	return int(n), nil
}

// Dialect is how search terms are matched on this database.
func (b *Backend) Dialect() query.Dialect {
	if b.Driver == Postgres {
		return query.Like{}
	}
	return query.Instr{}
}

// SelectSQL renders the statement Scan runs for q, before rebinding.
func SelectSQL(q *query.T) (s string) {
	s = `SELECT id, pubkey, created_at, kind, tags, content, sig FROM event`
	if q.Where != "" {
		s += " WHERE " + q.Where
	}
	return s + " ORDER BY " + query.OrderBy + " LIMIT ?"
}

func (b *Backend) Scan(c context.T, q *query.T) (evs event.Ts, err error) {
	if b.DB == nil {
		return nil, eventstore.Unavailable(eventstore.ErrClosed)
	}
	if q.Limit <= 0 {
		return
	}
	q = q.In(b.Dialect())
	args := append(append([]any{}, q.Params...), q.Limit)
	var rows []row
	if err = b.DB.SelectContext(c, &rows, b.DB.Rebind(SelectSQL(q)),
		args...); chk.E(err) {
		return nil, eventstore.Unavailable(err)
	}
	evs = make(event.Ts, 0, len(rows))
	for i := range rows {
		var ev *event.T
		if ev, err = rows[i].toEvent(); chk.E(err) {
			return nil, eventstore.Unavailable(err)
		}
		evs = append(evs, ev)
	}
	return
}

// All streams every stored event in scan order, for exports.
func (b *Backend) All(c context.T, fn func(ev *event.T) error) (err error) {
	if b.DB == nil {
		return eventstore.Unavailable(eventstore.ErrClosed)
	}
	var rows *sqlx.Rows
	if rows, err = b.DB.QueryxContext(c, `SELECT id, pubkey, created_at, kind,
		tags, content, sig FROM event ORDER BY `+query.OrderBy); chk.E(err) {
		return eventstore.Unavailable(err)
	}
	defer rows.Close()
	for rows.Next() {
		var r row
		if err = rows.StructScan(&r); chk.E(err) {
			return eventstore.Unavailable(err)
		}
		var ev *event.T
		if ev, err = r.toEvent(); chk.E(err) {
			return eventstore.Unavailable(err)
		}
		if err = fn(ev); err != nil {
			return
		}
	}
	return eventstore.Unavailable(rows.Err())
}
