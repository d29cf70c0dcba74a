package tags

import (
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/tag"
)

// T is a list of tag.T - which are lists of string elements with ordering and
// no uniqueness constraint (not a set).
type T []tag.T

// GetAll gets all the tags with the given name that also carry a value.
func (t T) GetAll(name string) (result T) {
	for _, v := range t {
		if len(v) >= 2 && v.Key() == name {
			result = append(result, v)
		}
	}
	return
}

// Values returns the second element of every tag with the given name, in
// order of appearance.
func (t T) Values(name string) (vals []string) {
	for _, v := range t.GetAll(name) {
		vals = append(vals, v.Value())
	}
	return
}

// Clone makes a deep copy of the tags.
func (t T) Clone() (c T) {
	if t == nil {
		return nil
	}
	c = make(T, len(t))
	for i := range t {
		c[i] = t[i].Clone()
	}
	return
}
