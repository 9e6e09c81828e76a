// Package logger provides leveled logging for the fieldlens CLI.
//
// Messages below the current threshold are dropped. The --verbose flag
// lowers the threshold to Debug so fetches, shape detection, stale
// discards and exports are traced on stderr. Errors always print.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log messages by severity.
type Level int

// Log levels, least severe first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed before each message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var (
	mu        sync.Mutex
	threshold           = LevelError
	output    io.Writer = os.Stderr
)

// SetVerbose switches between tracing everything and errors only.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelError)
}

// IsVerbose reports whether debug messages are printed.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// SetLevel sets the lowest level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = min(l, LevelError)
}

// Enabled reports whether messages at l are printed.
func Enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return l >= threshold
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < threshold {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}

// Debug logs a trace message.
func Debug(format string, args ...any) { emit(LevelDebug, format, args...) }

// Info logs a progress message.
func Info(format string, args ...any) { emit(LevelInfo, format, args...) }

// Warn logs a recoverable problem.
func Warn(format string, args ...any) { emit(LevelWarn, format, args...) }

// Error logs a failure. Errors are never filtered.
func Error(format string, args ...any) { emit(LevelError, format, args...) }

// Section prints a banner separating the stages of one command in
// verbose output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if threshold > LevelDebug {
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}
