package app

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/Hubmakerlabs/sandboxr/pkg/context"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/event"
	"github.com/Hubmakerlabs/sandboxr/pkg/nostr/eventstore"
	"github.com/klauspost/compress/zstd"
)

// Import reads line structured JSON events and runs each one through the
// same checks and storage as a published event. Lines that do not parse or
// verify are skipped; a storage failure stops the import.
func (rl *Relay) Import(c context.T, r io.Reader) (added int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), int(rl.MaxMessageSize))
	var line int
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			continue
		}
		ev := &event.T{}
		if err = json.Unmarshal(b, ev); chk.D(err) {
			log.D.F("line %d: not an event", line)
			err = nil
			continue
		}
		if !rl.Verify(ev) {
			log.W.F("line %d: %s: %s", line, NoticeBadSignature, ev.ID)
			continue
		}
		var o eventstore.Outcome
		if o, err = rl.AddEvent(c, ev); chk.E(err) {
			return
		}
		if o == eventstore.Inserted {
			added++
		}
	}
	err = scanner.Err()
	return
}

// ImportFiles imports from each file in turn, or stdin when there are none.
func (rl *Relay) ImportFiles(c context.T, files []string) (err error) {
	log.D.Ln("running import subcommand on these files:", files)
	if len(files) == 0 {
		var n int
		n, err = rl.Import(c, os.Stdin)
		log.I.F("imported %d events from stdin", n)
		return
	}
	for _, name := range files {
		var n int
		if n, err = rl.importFile(c, name); err != nil {
			return
		}
		log.I.F("imported %d events from %s", n, name)
	}
	return
}

func (rl *Relay) importFile(c context.T, name string) (n int, err error) {
	var fh *os.File
	if fh, err = os.Open(name); chk.E(err) {
		return
	}
	defer fh.Close()
	var r io.Reader = fh
	if strings.HasSuffix(name, ZstdExt) {
		var dec *zstd.Decoder
		if dec, err = zstd.NewReader(fh); chk.E(err) {
			return
		}
		defer dec.Close()
		r = dec
	}
	return rl.Import(c, r)
}
