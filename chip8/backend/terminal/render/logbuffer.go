package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry represents a single log message with metadata
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer keeps the last entries logged, up to a fixed capacity. Safe for
// concurrent use.
type LogBuffer struct {
	mu       sync.Mutex
	entries  []LogEntry // oldest first
	capacity int
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &LogBuffer{
		entries:  make([]LogEntry, 0, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, dropping the oldest one when full
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if len(lb.entries) == lb.capacity {
		n := copy(lb.entries, lb.entries[1:])
		lb.entries = lb.entries[:n]
	}
	lb.entries = append(lb.entries, entry)
}

// GetRecent returns up to maxCount entries, newest first. maxCount <= 0
// returns everything.
func (lb *LogBuffer) GetRecent(maxCount int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	n := len(lb.entries)
	if n == 0 {
		return nil
	}
	if maxCount > 0 && maxCount < n {
		n = maxCount
	}

	out := make([]LogEntry, n)
	for i := range out {
		out[i] = lb.entries[len(lb.entries)-1-i]
	}
	return out
}

// LogBufferHandler is a slog.Handler that captures logs to a LogBuffer
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	attrs  string
	group  string
}

// NewLogBufferHandler creates a new handler that writes to the given buffer
func NewLogBufferHandler(buffer *LogBuffer, level slog.Leveler) *LogBufferHandler {
	return &LogBufferHandler{
		buffer: buffer,
		level:  level,
	}
}

func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.attrs)
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.group, a)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: sb.String(),
	})
	return nil
}

func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&sb, h.group, a)
	}

	h2 := *h
	h2.attrs = sb.String()
	return &h2
}

func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = h.group + name + "."
	return &h2
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	fmt.Fprintf(sb, " %s%s=%v", group, a.Key, a.Value)
}

// FormatLogEntry formats a log entry for display
func FormatLogEntry(entry LogEntry) string {
	levelStr := "???"
	switch entry.Level {
	case slog.LevelDebug:
		levelStr = "DBG"
	case slog.LevelInfo:
		levelStr = "INF"
	case slog.LevelWarn:
		levelStr = "WRN"
	case slog.LevelError:
		levelStr = "ERR"
	}

	return fmt.Sprintf("%s [%s] %s", entry.Time.Format("15:04:05"), levelStr, entry.Message)
}
