package timestamp

import (
	"time"
)

// T is a UNIX timestamp of 1 second precision, as carried in created_at and
// in the since/until bounds of a filter.
type T int64

// Now returns the current UNIX timestamp of the current second.
func Now() T { return T(time.Now().Unix()) }

// I64 returns the timestamp as int64.
func (t T) I64() int64 { return int64(t) }

// Time converts the timestamp into a time.Time.
func (t T) Time() time.Time { return time.Unix(int64(t), 0) }

// Ptr returns a pointer to a copy of the timestamp, for the optional filter
// bounds.
func (t T) Ptr() *T { return &t }
