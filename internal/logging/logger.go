// Package logging provides the minimal printf-style logging contract shared
// by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is a minimal, printf-style logging contract so code can depend on
// this package without caring about the sink.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

var (
	mu           sync.RWMutex
	defaultLevel = LevelInfo
	defaultSink  io.Writer = os.Stderr
)

// SetLevel sets the minimum level emitted by component loggers.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	defaultLevel = level
}

// SetSink redirects component logger output, primarily for tests.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultSink = w
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type componentLogger struct {
	component string
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &componentLogger{component: component}
}

func (l *componentLogger) log(level Level, levelStr, format string, args ...any) {
	mu.RLock()
	minLevel, sink := defaultLevel, defaultSink
	mu.RUnlock()
	if level < minLevel {
		return
	}

	// Format: 2025-09-30 12:34:56 [INFO] [component] message
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(sink, "%s [%s] [%s] %s\n", timestamp, levelStr, l.component, message)
}

func (l *componentLogger) Debug(format string, args ...any) {
	l.log(LevelDebug, "DEBUG", format, args...)
}

func (l *componentLogger) Info(format string, args ...any) {
	l.log(LevelInfo, "INFO", format, args...)
}

func (l *componentLogger) Warn(format string, args ...any) {
	l.log(LevelWarn, "WARN", format, args...)
}

func (l *componentLogger) Error(format string, args ...any) {
	l.log(LevelError, "ERROR", format, args...)
}
