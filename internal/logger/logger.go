// Package logger provides the --verbose trace for the margin CLI.
// With verbose on, the annotation pipeline narrates its phases to
// stderr, so a mis-placed or rejected anchor can be traced back to the
// step that produced it. Everything is silent by default: stray writes
// would corrupt the terminal UI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables the trace.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether the trace is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects the trace. Defaults to os.Stderr; tests point it
// at a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes one tagged trace line when verbose is on.
func logf(tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, tag+" "+format+"\n", args...)
}

// Section marks the start of a pipeline phase in the trace. Services
// open one before logging the phase's steps, e.g. "Annotation Load" or
// "Knowledge Query".
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Debug traces fine-grained steps: geometry values, window clamps,
// discarded responses.
func Debug(format string, args ...any) {
	logf("[DEBUG]", format, args...)
}

// Info traces phase outcomes: counts loaded, anchors created.
func Info(format string, args ...any) {
	logf("[INFO]", format, args...)
}

// Warn traces recoverable problems: a failed cache mirror, a dropped
// progress save.
func Warn(format string, args ...any) {
	logf("[WARN]", format, args...)
}
