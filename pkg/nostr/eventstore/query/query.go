// Package query translates a filter into a bounded, parameterised predicate
// over the event table.
//
// The predicate mirrors filter.T.Matches dimension by dimension, so an event
// is returned by a scan of a store holding only that event exactly when the
// filter matches it live.
package query

import (
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/filter"
)

const (
	// DefaultLimit applies when a filter has no limit or a limit of 0.
	DefaultLimit = 100
	// MaxLimit is the ceiling on any scan regardless of the requested limit.
	MaxLimit = 500
	// OrderBy is the result ordering every backend must produce.
	OrderBy = "created_at DESC, id ASC"
	// LikeEscape is the escape character used in the search predicate.
	LikeEscape = `\`
)

// Limits are the configured result count bounds.
type Limits struct {
	Default int
	Max     int
}

// Normalize fills unset bounds with the package defaults and keeps the
// default within the maximum.
func (l Limits) Normalize() Limits {
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if l.Default <= 0 {
		l.Default = DefaultLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// Clamp returns the effective result count for a requested limit.
func (l Limits) Clamp(requested *int) (n int) {
	l = l.Normalize()
	n = l.Default
	if requested != nil && *requested > 0 {
		n = *requested
	}
	if n > l.Max {
		n = l.Max
	}
	return
}

// T is a translated filter. Where is a conjunction using ? placeholders, empty
// when the filter is unconstrained; Params are bound in order.
type T struct {
	Where  string
	Params []any
	Limit  int
	// Filter is the source filter, for backends that evaluate the predicate
	// with the matcher instead of SQL.
	Filter *filter.T
}

// Dialect renders the search dimension, the one conjunct whose SQL differs
// between databases. Contains returns a condition with one placeholder and
// the value to bind to it.
type Dialect interface {
	Contains(term string) (cond string, param any)
}

// Like matches with LIKE, escaping the term's wildcards. It suits databases
// whose LIKE is case sensitive and compares whole strings, such as Postgres.
type Like struct{}

func (Like) Contains(term string) (string, any) {
	return "content LIKE ? ESCAPE '" + LikeEscape + "'",
		"%" + EscapeLike(term) + "%"
}

// Instr matches with instr, which compares bytes and has no wildcards. SQLite
// needs it: its LIKE stops at the first NUL in either string, folds ASCII
// case by default and refuses patterns over 50000 bytes.
type Instr struct{}

func (Instr) Contains(term string) (string, any) {
	return "instr(content, ?) > 0", term
}

// Translate builds the predicate, its parameters and the clamped limit, with
// the search term rendered as LIKE.
func Translate(f *filter.T, l Limits) (q *T) { return TranslateIn(Like{}, f, l) }

// In renders q's filter again for dialect d, keeping its limit.
func (q *T) In(d Dialect) (r *T) {
	if q.Filter == nil {
		return q
	}
	r = TranslateIn(d, q.Filter, Limits{})
	r.Limit = q.Limit
	return
}

// TranslateIn builds the predicate for a database dialect.
func TranslateIn(d Dialect, f *filter.T, l Limits) (q *T) {
	if f == nil {
		f = &filter.T{}
	}
	q = &T{Limit: l.Clamp(f.Limit), Filter: f}
	var wheres []string
	if len(f.IDs) > 0 {
		wheres = append(wheres, "id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			q.Params = append(q.Params, id)
		}
	}
	if len(f.Authors) > 0 {
		wheres = append(wheres, "pubkey IN ("+placeholders(len(f.Authors))+")")
		for _, a := range f.Authors {
			q.Params = append(q.Params, a)
		}
	}
	if len(f.Kinds) > 0 {
		wheres = append(wheres, "kind IN ("+placeholders(len(f.Kinds))+")")
		for _, k := range f.Kinds {
			q.Params = append(q.Params, int64(k))
		}
	}
	if f.Since != nil {
		wheres = append(wheres, "created_at >= ?")
		q.Params = append(q.Params, f.Since.I64())
	}
	if f.Until != nil {
		wheres = append(wheres, "created_at <= ?")
		q.Params = append(q.Params, f.Until.I64())
	}
	if f.Search != nil {
		cond, param := d.Contains(*f.Search)
		wheres = append(wheres, cond)
		q.Params = append(q.Params, param)
	}
	q.Where = strings.Join(wheres, " AND ")
	return
}

var likeEscaper = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// EscapeLike makes every LIKE wildcard in s match literally.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
