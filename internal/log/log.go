// Package log provides context-aware logging for gitmsg.
// Diagnostics go to stderr; primary data goes through the output package.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type ctxKey struct{}

// Logger provides diagnostics and debug command logging.
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

// Printf writes formatted diagnostics.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of diagnostics.
func (l *Logger) Println(args ...any) {
	fmt.Fprintln(l.out, args...)
}

// Debugf writes formatted diagnostics only in debug mode.
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(l.out, format, args...)
	}
}

// Command logs an external command execution.
// Only prints when debug mode is enabled.
func (l *Logger) Command(name string, args ...string) {
	if l.debug {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
}

// Debug returns true if debug mode is enabled.
func (l *Logger) Debug() bool {
	return l.debug
}

// Snip returns a safe prefix of s, capped by rune count. Model replies can be
// arbitrarily large; never log them whole.
func Snip(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	n := 0
	idx := 0
	for idx < len(s) {
		if n >= maxRunes {
			break
		}
		_, size := utf8.DecodeRuneInString(s[idx:])
		if size <= 0 {
			break
		}
		idx += size
		n++
	}

	if idx >= len(s) {
		return s
	}
	return s[:idx] + "…"
}
