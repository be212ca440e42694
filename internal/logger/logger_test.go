package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
}

func TestLogger_LogAndLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "terminal.txt")
	l := New(path)
	l.now = fixedClock

	l.Log("sls")
	l.Log("cmd layout EPOCH")

	want := []string{"[2026-03-01 09:30:00] sls", "[2026-03-01 09:30:00] cmd layout EPOCH"}
	assert.Equal(t, want, l.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want[0]+"\n"+want[1]+"\n", string(data))

	lines := l.Lines()
	lines[0] = "changed"
	assert.Equal(t, want, l.Lines())
}

func TestLogger_Tail(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "t.txt"))
	l.now = fixedClock
	for _, s := range []string{"a", "b", "c"} {
		l.Log(s)
	}
	assert.Equal(t, []string{"[2026-03-01 09:30:00] b", "[2026-03-01 09:30:00] c"}, l.Tail(2))
	assert.Len(t, l.Tail(10), 3)
}

func TestLogger_Hook(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "t.txt"))
	l.now = fixedClock
	log := zerolog.New(&bytes.Buffer{}).Hook(l.Hook(zerolog.WarnLevel))

	log.Info().Msg("globe built")
	log.Warn().Int("project", 15).Msg("no coordinate for location, marker skipped")
	log.Error().Msg("texture failed")

	assert.Equal(t, []string{
		"[2026-03-01 09:30:00] WARN no coordinate for location, marker skipped",
		"[2026-03-01 09:30:00] ERROR texture failed",
	}, l.Lines())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("disabled"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestSetup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	log, closer, err := Setup("warn", dir, &console)
	require.NoError(t, err)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "shown")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, console.String(), "shown")
}
