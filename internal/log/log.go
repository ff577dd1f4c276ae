// Package log provides context-aware logging for mkbranch.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger writes diagnostics to stderr. Debug output and external-command
// echoes are only emitted when debug mode is enabled via --debug.
type Logger struct {
	out   io.Writer
	debug bool
}

// New creates a new logger.
func New(out io.Writer, debug bool) *Logger {
	return &Logger{out: out, debug: debug}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "Warning: "+format+"\n", args...)
}

// Debug writes a debug message with optional key-value pairs.
// Only prints when debug mode is enabled.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.debug {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Command logs an external command execution and returns a func to call
// with the elapsed time once the command finishes.
// No-op unless debug mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.debug {
		return func(time.Duration) {}
	}
	prefix := ""
	if dir != "" {
		prefix = "[" + dir + "] "
	}
	line := fmt.Sprintf("%s$ %s %s", prefix, name, strings.Join(args, " "))
	return func(elapsed time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, elapsed.Round(time.Millisecond))
	}
}

// IsDebug returns true if debug mode is enabled.
func (l *Logger) IsDebug() bool {
	return l.debug
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

// FilterEnv returns only the PATH and GIT_* entries of env, for logging
// subprocess environments without leaking unrelated variables.
func FilterEnv(env []string) []string {
	var filtered []string
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") || strings.HasPrefix(kv, "GIT_") {
			filtered = append(filtered, kv)
		}
	}
	return filtered
}
