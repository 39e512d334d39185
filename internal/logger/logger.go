// Package logger provides a leveled logger for the application backed by
// zerolog. It supports three levels: off (no output), normal
// (info/warn/error), and verbose (includes debug). The logger is safe for
// concurrent use.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps config strings ("off", "info", "debug", ...) to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "disabled", "quiet":
		return LevelOff
	case "debug", "verbose", "trace":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	zl    zerolog.Logger
}

// New creates a logger with the given level, writing human-readable lines
// to out. If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	return &Logger{
		level: level,
		zl:    zerolog.New(w).With().Timestamp().Logger().Level(toZerolog(level)),
	}
}

// NewJSON creates a logger that writes one JSON object per line, for the
// API server in production.
func NewJSON(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		zl:    zerolog.New(out).With().Timestamp().Logger().Level(toZerolog(level)),
	}
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelOff:
		return zerolog.Disabled
	case LevelVerbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.zl = l.zl.Level(toZerolog(level))
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Zerolog returns the underlying logger for structured call sites such as
// HTTP request logging.
func (l *Logger) Zerolog() zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zl
}

// Debug logs at debug level; only visible in verbose mode.
func (l *Logger) Debug(format string, args ...any) { l.logf(zerolog.DebugLevel, format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.logf(zerolog.InfoLevel, format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.logf(zerolog.WarnLevel, format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.logf(zerolog.ErrorLevel, format, args...) }

func (l *Logger) logf(level zerolog.Level, format string, args ...any) {
	l.mu.RLock()
	zl := l.zl
	l.mu.RUnlock()
	zl.WithLevel(level).Msgf(format, args...)
}
