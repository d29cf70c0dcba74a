package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/klauspost/compress/zstd"
)

// ZstdExt marks archive files that are zstd compressed.
const ZstdExt = ".zst"

// Export writes every stored event to w as one JSON object per line, newest
// first.
func (rl *Relay) Export(c context.T, w io.Writer) (n int, err error) {
	walker, ok := rl.Store.(eventstore.Walker)
	if !ok {
		return 0, fmt.Errorf("event store %T cannot be exported", rl.Store)
	}
	bw := bufio.NewWriter(w)
	if err = walker.All(c, func(ev *event.T) (err error) {
		var b []byte
		if b, err = ev.MarshalJSON(); err != nil {
			return
		}
		if _, err = bw.Write(append(b, '\n')); err != nil {
			return
		}
		n++
		return
	}); chk.E(err) {
		return
	}
	err = bw.Flush()
	return
}

// ExportFile exports to a file, or stdout when filename is empty.
func (rl *Relay) ExportFile(c context.T, filename string) (err error) {
	log.D.Ln("running export subcommand")
	var w io.Writer = os.Stdout
	if filename != "" {
		var fh *os.File
		if fh, err = os.OpenFile(filename,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600); chk.E(err) {
			return
		}
		defer func() { chk.E(fh.Close()) }()
		w = fh
		if strings.HasSuffix(filename, ZstdExt) {
			var enc *zstd.Encoder
			if enc, err = zstd.NewWriter(fh); chk.E(err) {
				return
			}
			defer func() { chk.E(enc.Close()) }()
			w = enc
		}
	}
	var n int
	if n, err = rl.Export(c, w); err != nil {
		return
	}
	log.I.F("exported %d events", n)
	return
}
