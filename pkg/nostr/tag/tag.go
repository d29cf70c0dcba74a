package tag

// The tag position meanings so they are clear when reading.
const (
	Key = iota
	Value
	Relay
)

// T is a list of strings with a literal ordering, the first element being the
// tag name.
//
// Not a set, there can be repeating elements.
type T []string

// Key returns the first element of the tag.
func (t T) Key() string {
	if len(t) > Key {
		return t[Key]
	}
	return ""
}

// Value returns the second element of the tag.
func (t T) Value() string {
	if len(t) > Value {
		return t[Value]
	}
	return ""
}

// Contains returns true if the provided element is found in the tag slice.
func (t T) Contains(s string) bool {
	for i := range t {
		if t[i] == s {
			return true
		}
	}
	return false
}

// Clone makes a new tag.T with the same members.
func (t T) Clone() (c T) {
	if t == nil {
		return nil
	}
	c = make(T, len(t))
	copy(c, t)
	return
}

// Equals reports whether two tags hold the same elements in the same order.
func (t T) Equals(t1 T) bool {
	if len(t) != len(t1) {
		return false
	}
	for i := range t {
		if t[i] != t1[i] {
			return false
		}
	}
	return true
}
