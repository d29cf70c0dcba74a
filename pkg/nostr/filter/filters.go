package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/timestamp"
)

// ErrValidation is wrapped by every error produced while parsing a filter.
var ErrValidation = errors.New("invalid: malformed filter")

// T is a query where one or all elements can be filled in. A nil or empty
// field places no constraint on its dimension.
//
// Tag queries (#e, #p, ...) are not supported and are ignored when parsing.
type T struct {
	IDs     tag.T        `json:"ids,omitempty"`
	Authors tag.T        `json:"authors,omitempty"`
	Kinds   []kind.T     `json:"kinds,omitempty"`
	Since   *timestamp.T `json:"since,omitempty"`
	Until   *timestamp.T `json:"until,omitempty"`
	Search  *string      `json:"search,omitempty"`
	Limit   *int         `json:"limit,omitempty"`
}

type plain T

// wire is the decoded form of a filter before validation. The limit is kept
// raw so that numbers too large for an int saturate instead of failing.
type wire struct {
	plain
	Limit json.RawMessage `json:"limit,omitempty"`
}

// Parse decodes a JSON filter object.
func Parse(b []byte) (f *T, err error) {
	f = &T{}
	if err = f.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return
}

// UnmarshalJSON decodes and validates a filter. Anything that is not an
// object with correctly typed fields, a negative limit or a search term
// holding a NUL character is rejected with an error wrapping ErrValidation.
// A limit beyond the range of an int saturates.
func (f *T) UnmarshalJSON(b []byte) (err error) {
	if f == nil {
		return fmt.Errorf("%w: cannot unmarshal into nil filter", ErrValidation)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return fmt.Errorf("%w: filter must be an object", ErrValidation)
	}
	var w wire
	if err = json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if w.Search != nil && strings.IndexByte(*w.Search, 0) >= 0 {
		return fmt.Errorf("%w: search contains a NUL character", ErrValidation)
	}
	p := w.plain
	p.Limit = nil
	if len(w.Limit) > 0 && string(w.Limit) != "null" {
		var l int
		if l, err = parseLimit(w.Limit); err != nil {
			return
		}
		p.Limit = &l
	}
	*f = T(p)
	return
}

// parseLimit reads a JSON number as a non-negative int, truncating any
// fraction and saturating at math.MaxInt.
func parseLimit(raw json.RawMessage) (l int, err error) {
	s := string(raw)
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return 0, fmt.Errorf("%w: limit %s is not a number", ErrValidation, s)
	}
	var n float64
	if n, err = strconv.ParseFloat(s, 64); err != nil &&
		!errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: limit %s is not a number", ErrValidation, s)
	}
	err = nil
	switch {
	case n < 0:
		return 0, fmt.Errorf("%w: negative limit %s", ErrValidation, s)
	case n >= math.MaxInt:
		return math.MaxInt, nil
	}
	return int(n), nil
}

func (f *T) String() string {
	j, _ := json.Marshal(f)
	return string(j)
}

// Matches reports whether the event satisfies every constrained dimension of
// the filter.
func (f *T) Matches(ev *event.T) bool {
	if ev == nil {
		return false
	}
	if len(f.IDs) > 0 && !f.IDs.Contains(ev.ID) {
		return false
	}
	if len(f.Authors) > 0 && !f.Authors.Contains(ev.PubKey) {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, ev.Kind) {
		return false
	}
	if f.Since != nil && ev.CreatedAt < *f.Since {
		return false
	}
	if f.Until != nil && ev.CreatedAt > *f.Until {
		return false
	}
	if f.Search != nil && !strings.Contains(ev.Content, *f.Search) {
		return false
	}
	return true
}

func containsKind(ks []kind.T, k kind.T) bool {
	for i := range ks {
		if ks[i] == k {
			return true
		}
	}
	return false
}

func arePointerValuesEqual[V comparable](a *V, b *V) bool {
	if a == nil && b == nil {
		return true
	}
	if a != nil && b != nil {
		return *a == *b
	}
	return false
}

// Equal reports whether two filters select the same events with the same
// limit.
func Equal(a, b *T) bool {
	switch {
	case !a.IDs.Equals(b.IDs),
		!a.Authors.Equals(b.Authors),
		len(a.Kinds) != len(b.Kinds),
		!arePointerValuesEqual(a.Since, b.Since),
		!arePointerValuesEqual(a.Until, b.Until),
		!arePointerValuesEqual(a.Search, b.Search),
		!arePointerValuesEqual(a.Limit, b.Limit):

		return false
	}
	for i := range a.Kinds {
		if a.Kinds[i] != b.Kinds[i] {
			return false
		}
	}
	return true
}

func clonePtr[V any](v *V) *V {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (f *T) Clone() (clone *T) {
	clone = &T{
		IDs:     f.IDs.Clone(),
		Authors: f.Authors.Clone(),
		Since:   clonePtr(f.Since),
		Until:   clonePtr(f.Until),
		Search:  clonePtr(f.Search),
		Limit:   clonePtr(f.Limit),
	}
	if f.Kinds != nil {
		clone.Kinds = append([]kind.T{}, f.Kinds...)
	}
	return
}
