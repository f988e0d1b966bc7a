// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogNormal  LogLevel = 0
	LogVerbose LogLevel = 1
	LogDebug   LogLevel = 2
)

// Logger writes levelled messages to stderr.  The credential output
// stream stays on stdout, so everything here goes to the error channel
// where it cannot garble records.  Connection records (connect, close,
// recv) must reach stderr even without -v, so Info and Error are
// always on; verbosity only adds detail.
type Logger struct {
	level      LogLevel
	output     io.Writer
	mu         sync.Mutex
	timestamps bool
}

// NewLogger returns a Logger printing at the given verbosity
// (0 = normal, 1 = verbose, 2 = debug).
func NewLogger(verbosity int) *Logger {
	return &Logger{
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= 2,
	}
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) { l.output = w }

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Info always prints.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("INF", format, args...)
}

// Verbose prints when verbosity ≥ 1.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.emit("VRB", format, args...)
	}
}

// Debug prints when verbosity ≥ 2.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.emit("DBG", format, args...)
	}
}

// Error always prints regardless of verbosity.  Prefixed with [ERR].
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("ERR", format, args...)
}

func (l *Logger) emit(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.timestamps {
		ts := time.Now().Format("15:04:05.000")
		fmt.Fprintf(l.output, "%s [%s] %s\n", ts, level, msg)
	} else {
		fmt.Fprintf(l.output, "[%s] %s\n", level, msg)
	}
}
