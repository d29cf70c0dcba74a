package eventstore

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable wraps every failure of a storage backend.
	ErrStorageUnavailable = errors.New("error: storage unavailable")
	// ErrClosed is returned by a backend used before Init or after Close.
	ErrClosed = errors.New("store is not open")
)

// Unavailable wraps a backend error so callers can recognise it with
// errors.Is(err, ErrStorageUnavailable). A nil error stays nil.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
