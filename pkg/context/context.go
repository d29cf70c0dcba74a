// Package context shortens the standard library context names so the
// signatures across the relay stay on one line.
package context

import (
	"context"
)

type (
	T = context.Context
	F = context.CancelFunc
	C = context.CancelCauseFunc
)

var (
	Bg          = context.Background
	Cancel      = context.WithCancel
	CancelCause = context.WithCancelCause
	Cause       = context.Cause
	Timeout     = context.WithTimeout
	Value       = context.WithValue
	Canceled    = context.Canceled
)
