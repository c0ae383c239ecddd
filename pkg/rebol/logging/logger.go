// Package logging carries the small logger used by the CLI, the watch
// loop, and the script index. The scanner core never logs; it reports
// through errors.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger receives progress and diagnostic output.
type Logger interface {
	Log(values ...any)
	LogLine(values ...any)
}

func formatValues(values ...any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Log(values ...any) {
	fmt.Fprint(l.w, formatValues(values...))
}

func (l *writerLogger) LogLine(values ...any) {
	fmt.Fprintln(l.w, formatValues(values...))
}

// WriterLogger returns a logger that writes to w.
func WriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

// StdoutLogger returns the default logger for interactive use.
func StdoutLogger() Logger {
	return &writerLogger{w: os.Stdout}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return &writerLogger{w: io.Discard}
}

// BufferedLogger captures output for later inspection in tests.
type BufferedLogger struct {
	mu    sync.Mutex
	lines []string
	buf   strings.Builder
}

func NewBufferedLogger() *BufferedLogger {
	return &BufferedLogger{}
}

func (l *BufferedLogger) Log(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteString(formatValues(values...))
}

func (l *BufferedLogger) LogLine(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, l.buf.String()+formatValues(values...))
	l.buf.Reset()
}

// Lines returns the completed lines logged so far.
func (l *BufferedLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns all captured output.
func (l *BufferedLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := strings.Join(l.lines, "\n")
	if len(l.lines) > 0 {
		out += "\n"
	}
	if l.buf.Len() > 0 {
		out += l.buf.String()
	}
	return out
}
