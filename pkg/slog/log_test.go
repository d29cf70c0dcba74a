package slog_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/sandboxr/pkg/slog"
	"github.com/stretchr/testify/assert"
)

var log, chk = slog.New(os.Stdout)

func TestLevelGate(t *testing.T) {
	var buf bytes.Buffer
	slog.SetWriter(&buf)
	defer slog.SetWriter(nil)
	prev := slog.GetLogLevel()
	defer slog.SetLogLevel(prev)

	slog.SetLogLevel(slog.Info)
	log.D.Ln("hidden debug line")
	log.I.Ln("visible info line")
	assert.NotContains(t, buf.String(), "hidden debug line")
	assert.Contains(t, buf.String(), "visible info line")

	buf.Reset()
	slog.SetLogLevel(slog.Trace)
	log.T.F("trace %d", 7)
	assert.Contains(t, buf.String(), "trace 7")
}

func TestChk(t *testing.T) {
	var buf bytes.Buffer
	slog.SetWriter(&buf)
	defer slog.SetWriter(nil)

	assert.False(t, chk.E(nil))
	assert.True(t, chk.E(errors.New("dummy error as error")))
	assert.Contains(t, buf.String(), "dummy error as error")

	err := log.E.Err("format string %d '%s'", 5, "testing")
	assert.EqualError(t, err, "format string 5 'testing'")
}

func TestSetLogLevelString(t *testing.T) {
	prev := slog.GetLogLevel()
	defer slog.SetLogLevel(prev)
	assert.True(t, slog.SetLogLevelString("DEBUG"))
	assert.Equal(t, slog.Debug, slog.GetLogLevel())
	assert.False(t, slog.SetLogLevelString("loud"))
	assert.Equal(t, slog.Debug, slog.GetLogLevel())
	assert.True(t, strings.HasPrefix(slog.LevelSpecs[slog.Error].Name, "ERR"))
}
