package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TranscriptPath is the default path of the terminal transcript, relative to the working directory.
const TranscriptPath = "logs/terminal.txt"

// LogFileName is the structured log written next to the transcript.
const LogFileName = "globe.log"

// Logger stores lines of text (search queries, command output, warnings) in memory for the
// terminal overlay and appends them to a transcript file on disk.
type Logger struct {
	path  string
	mu    sync.Mutex
	lines []string
	now   func() time.Time
}

// New returns a Logger appending to path and ensures its directory exists.
func New(path string) *Logger {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, now: time.Now}
}

// Log appends a line prefixed with [timestamp] in local time.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns up to n of the most recent lines.
func (l *Logger) Tail(n int) []string {
	lines := l.Lines()
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Hook mirrors structured log events at or above min into the transcript, so warnings
// such as skipped markers show up in the terminal overlay.
func (l *Logger) Hook(min zerolog.Level) zerolog.Hook {
	return zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, msg string) {
		if level < min || level == zerolog.NoLevel {
			return
		}
		l.Log(strings.ToUpper(level.String()) + " " + msg)
	})
}

// ParseLevel maps a config log level to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED":
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

// Setup builds the application logger: coloured console output to console and plain
// console-formatted output to dir/globe.log. The returned closer closes the log file.
func Setup(level, dir string, console io.Writer) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logger: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logger: %w", err)
	}
	mlw := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
		zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true},
	)
	log := zerolog.New(mlw).Level(ParseLevel(level)).With().Timestamp().Logger()
	return log, file, nil
}
