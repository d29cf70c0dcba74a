// Package slog is the levelled terminal logger used throughout the relay.
//
// Every package declares its own pair:
//
//	var log, chk = slog.New(os.Stderr)
//
// and then writes log.I.Ln(...), log.D.F(...) or, for the very common error
// check, `if err = f(); chk.E(err) { return }`.
package slog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
)

const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

type (
	// Ln prints lists of interfaces with spaces in between
	Ln func(a ...interface{})
	// F prints like fmt.Printf surrounded by log details
	F func(format string, a ...interface{})
	// S prints a spew.Sdump for an interface slice
	S func(a ...interface{})
	// C accepts a function so that the extra computation can be avoided if it
	// is not being viewed
	C func(closure func() string)
	// Chk prints the error if it is not nil and returns true in that case
	Chk func(e error) bool
	// Err is a pass-through function that uses fmt.Errorf to construct an
	// error and returns the error after printing it to the log
	Err func(format string, a ...interface{}) error

	LevelPrinter struct {
		Ln
		F
		S
		C
		Chk
		Err
	}

	LevelSpec struct {
		ID        int
		Name      string
		Colorizer func(a ...interface{}) string
	}
)

var (
	currentLevel atomic.Int32
	writerMx     sync.Mutex
	// override, when set, replaces the writer given to New for every logger.
	override io.Writer
	// LevelSpecs specifies the id, string name and color-printing function
	LevelSpecs = []LevelSpec{
		{Off, "   ", color.Bit24(0, 0, 0, false).Sprint},
		{Fatal, "FTL", color.Bit24(128, 0, 0, false).Sprint},
		{Error, "ERR", color.Bit24(255, 0, 0, false).Sprint},
		{Warn, "WRN", color.Bit24(0, 255, 0, false).Sprint},
		{Info, "INF", color.Bit24(255, 255, 0, false).Sprint},
		{Debug, "DBG", color.Bit24(0, 125, 255, false).Sprint},
		{Trace, "TRC", color.Bit24(125, 0, 255, false).Sprint},
	}
	lvlStrs = map[string]int{
		"off":   Off,
		"fatal": Fatal,
		"error": Error,
		"warn":  Warn,
		"info":  Info,
		"debug": Debug,
		"trace": Trace,
	}
)

func init() {
	switch strings.ToUpper(os.Getenv("GODEBUG")) {
	case "1", "TRUE", "ON", "DEBUG":
		SetLogLevel(Debug)
	case "TRACE":
		SetLogLevel(Trace)
	case "WARN":
		SetLogLevel(Warn)
	case "ERROR":
		SetLogLevel(Error)
	case "FATAL":
		SetLogLevel(Fatal)
	case "0", "OFF", "FALSE":
		SetLogLevel(Off)
	default:
		SetLogLevel(Info)
	}
}

// Log is a set of log printers for the various Level items.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

// Check is the set of error check printers, one per level.
type Check struct {
	F, E, W, I, D, T Chk
}

func New(writer io.Writer) (l *Log, c *Check) {
	l = &Log{
		F: GetPrinter(Fatal, writer),
		E: GetPrinter(Error, writer),
		W: GetPrinter(Warn, writer),
		I: GetPrinter(Info, writer),
		D: GetPrinter(Debug, writer),
		T: GetPrinter(Trace, writer),
	}
	c = &Check{
		F: l.F.Chk,
		E: l.E.Chk,
		W: l.W.Chk,
		I: l.I.Chk,
		D: l.D.Chk,
		T: l.T.Chk,
	}
	return
}

// GetStd returns a logger writing to stderr.
func GetStd() (ll *Log) {
	ll, _ = New(os.Stderr)
	return
}

// SetLogLevel sets the highest level that will be printed.
func SetLogLevel(l int) { currentLevel.Store(int32(l)) }

func GetLogLevel() (l int) { return int(currentLevel.Load()) }

// SetLogLevelString sets the level from its name, as given on the command
// line. Unknown names leave the level unchanged and return false.
func SetLogLevelString(s string) (ok bool) {
	var l int
	if l, ok = lvlStrs[strings.ToLower(strings.TrimSpace(s))]; ok {
		SetLogLevel(l)
	}
	return
}

// SetWriter redirects every logger to w. Passing nil restores the writers the
// loggers were created with.
func SetWriter(w io.Writer) {
	writerMx.Lock()
	defer writerMx.Unlock()
	override = w
}

func JoinStrings(a ...any) (s string) {
	for i := range a {
		s += fmt.Sprint(a[i])
		if i < len(a)-1 {
			s += " "
		}
	}
	return
}

func GetPrinter(l int32, writer io.Writer) LevelPrinter {
	emit := func(text string) {
		if int32(GetLogLevel()) < l {
			return
		}
		writerMx.Lock()
		defer writerMx.Unlock()
		w := writer
		if override != nil {
			w = override
		}
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			LevelSpecs[l].Colorizer(LevelSpecs[l].Name),
			text,
			GetLoc(3),
		)
	}
	return LevelPrinter{
		Ln: func(a ...interface{}) { emit(JoinStrings(a...)) },
		F: func(format string, a ...interface{}) {
			emit(fmt.Sprintf(format, a...))
		},
		S: func(a ...interface{}) { emit(spew.Sdump(a...)) },
		C: func(closure func() string) {
			if int32(GetLogLevel()) < l {
				return
			}
			emit(closure())
		},
		Chk: func(e error) bool {
			if e != nil {
				emit(e.Error())
				return true
			}
			return false
		},
		Err: func(format string, a ...interface{}) error {
			err := fmt.Errorf(format, a...)
			emit(err.Error())
			return err
		},
	}
}

func GetLoc(skip int) (output string) {
	_, file, line, _ := runtime.Caller(skip)
	output = color.Bit24(0, 128, 255, false).Sprint(file, ":", line)
	return
}
