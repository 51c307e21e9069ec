// Package tui is the interactive control panel for a running mock
// server: arm one-shot failures per route or middleware, reset the
// datasets and watch the request log, all from the terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// logCapacity bounds the in-memory request log.
const logCapacity = 100

// LogBuffer is a fixed-capacity ring of log lines shared between the
// server's logger and the panel's log pane.
type LogBuffer struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewLogBuffer creates a LogBuffer holding up to logCapacity lines.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{max: logCapacity}
}

// Append adds a line, evicting the oldest when full.
func (b *LogBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// bufferHandler is a slog.Handler that renders records into a
// LogBuffer so the panel can display server activity.
type bufferHandler struct {
	buf   *LogBuffer
	level slog.Leveler
	attrs []slog.Attr
}

// NewBufferHandler creates a slog.Handler appending to buf. Records
// below level are dropped.
func NewBufferHandler(buf *LogBuffer, level slog.Leveler) slog.Handler {
	return &bufferHandler{buf: buf, level: level}
}

func (h *bufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bufferHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05"))
	b.WriteString(" ")
	b.WriteString(r.Level.String())
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, attr := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
	}
	r.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
		return true
	})
	h.buf.Append(b.String())
	return nil
}

func (h *bufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &bufferHandler{buf: h.buf, level: h.level, attrs: merged}
}

func (h *bufferHandler) WithGroup(string) slog.Handler {
	// The panel log is flat; groups add nothing to a 100-line pane.
	return h
}
