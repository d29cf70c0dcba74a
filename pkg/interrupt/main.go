// Package interrupt runs registered shutdown callbacks, newest first, when
// the process receives SIGINT or SIGTERM or a shutdown is requested.
package interrupt

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
)

var log, chk = slog.New(os.Stderr)

type HandlerWithSource struct {
	Source string
	Fn     func()
}

var (
	requested atomic.Bool

	// ch receives the signals that cause the interrupt.
	ch      chan os.Signal
	signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	start   sync.Once

	// shutdown is closed by Request.
	shutdown     = make(chan struct{})
	shutdownOnce sync.Once

	addHandlerChan = make(chan HandlerWithSource)

	// HandlersDone is closed after all interrupt handlers have run.
	HandlersDone = make(chan struct{})

	callbacks []HandlerWithSource
)

// Listener waits for a signal or a shutdown request, collecting handlers in
// the meantime, and then runs them.
func Listener() {
	invokeCallbacks := func() {
		log.D.Ln("running interrupt callbacks", len(callbacks))
		for i := len(callbacks) - 1; i >= 0; i-- {
			log.T.Ln("running callback", i, callbacks[i].Source)
			callbacks[i].Fn()
		}
		log.D.Ln("interrupt handlers finished")
		close(HandlersDone)
	}
	for {
		select {
		case sig := <-ch:
			log.I.Ln("received signal", sig)
			requested.Store(true)
			invokeCallbacks()
			return
		case <-shutdown:
			log.W.Ln("received shutdown request, shutting down...")
			invokeCallbacks()
			return
		case handler := <-addHandlerChan:
			callbacks = append(callbacks, handler)
		}
	}
}

func listen() {
	start.Do(func() {
		ch = make(chan os.Signal, 1)
		signal.Notify(ch, signals...)
		go Listener()
	})
}

// AddHandler adds a handler to call when the process is interrupted.
func AddHandler(handler func()) {
	_, loc, line, _ := runtime.Caller(1)
	msg := fmt.Sprintf("%s:%d", loc, line)
	log.T.Ln("handler added by:", msg)
	listen()
	select {
	case addHandlerChan <- HandlerWithSource{msg, handler}:
	case <-HandlersDone:
		// too late, run it now
		handler()
	}
}

// Request programmatically requests a shutdown.
func Request() {
	listen()
	requested.Store(true)
	shutdownOnce.Do(func() { close(shutdown) })
}

// Requested returns true if an interrupt has been requested.
func Requested() bool { return requested.Load() }
