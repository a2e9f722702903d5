// Package logger writes human-oriented status lines to stderr
// Debug output is shown only in verbose mode
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	out     io.Writer // nil means os.Stderr at write time
)

// SetVerbose enables or disables verbose logging
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects log lines to w and returns a function restoring the previous writer
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// logf writes one prefixed line; workers may log concurrently
func logf(prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	w := out
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}

// Debug prints debug messages only when verbose mode is enabled
func Debug(format string, args ...interface{}) {
	if IsVerbose() {
		logf("[DEBUG] ", format, args...)
	}
}

// Info prints informational messages
func Info(format string, args ...interface{}) {
	logf("", format, args...)
}

// Success prints success messages with checkmark
func Success(format string, args ...interface{}) {
	logf("✓ ", format, args...)
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	logf("⚠ ", format, args...)
}

// Error prints error messages
func Error(format string, args ...interface{}) {
	logf("✗ ", format, args...)
}
