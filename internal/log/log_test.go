package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(func() {
		defaultLogger = nil
	})
	return &buf
}

func TestLineFormat(t *testing.T) {
	buf := newTestLogger(t)

	Info(CatConvert, "converted value", "from", "km / h", "to", "m / s")

	line := strings.TrimSuffix(buf.String(), "\n")
	require.NotEmpty(t, line)
	assert.Contains(t, line, " [INFO] [convert] converted value from=km / h to=m / s")
	// Timestamp prefix: 2006-01-02T15:04:05
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} `, line)
}

func TestLevels(t *testing.T) {
	buf := newTestLogger(t)

	Debug(CatUnit, "debug msg")
	Info(CatUnit, "info msg")
	Warn(CatUnit, "warn msg")
	Error(CatUnit, "error msg")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[ERROR]")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestMinLevelFiltering(t *testing.T) {
	buf := newTestLogger(t)
	SetMinLevel(LevelWarn)

	Debug(CatCache, "dropped")
	Info(CatCache, "dropped too")
	Warn(CatCache, "kept")
	Error(CatCache, "kept too")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "kept too")
}

func TestSetEnabled(t *testing.T) {
	buf := newTestLogger(t)

	SetEnabled(false)
	Error(CatREPL, "silenced")
	assert.Empty(t, buf.String())

	SetEnabled(true)
	Error(CatREPL, "audible")
	assert.Contains(t, buf.String(), "audible")
}

func TestOddFieldCount(t *testing.T) {
	buf := newTestLogger(t)

	Info(CatConfig, "loaded", "path", "/tmp/units.yaml", "orphan")

	assert.Contains(t, buf.String(), "path=/tmp/units.yaml orphan=<missing>")
}

func TestErrorErr(t *testing.T) {
	buf := newTestLogger(t)

	ErrorErr(CatCompose, "search failed", errors.New("too many nodes"), "depth", 4)
	assert.Contains(t, buf.String(), "depth=4 error=too many nodes")

	buf.Reset()
	ErrorErr(CatCompose, "search failed", nil)
	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestNilLoggerIsSafe(t *testing.T) {
	defaultLogger = nil
	assert.NotPanics(t, func() {
		Info(CatUnit, "nowhere to go")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
