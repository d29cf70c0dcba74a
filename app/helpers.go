package app

import (
	"hash/maphash"
	"net"
	"os"
	"unsafe"

	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
)

var log, chk = slog.New(os.Stderr)

func PointerHasher[V any](_ maphash.Seed, k *V) uint64 {
	return uint64(uintptr(unsafe.Pointer(k)))
}

// allowed reports whether a remote address, with or without a port, may
// connect. An empty whitelist allows everyone.
func (rl *Relay) allowed(remote string) bool {
	if len(rl.Whitelist) == 0 {
		return true
	}
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	for i := range rl.Whitelist {
		if rl.Whitelist[i] == remote {
			return true
		}
	}
	return false
}
