// Package logbuf keeps a process-wide bounded buffer of log records so
// an application can show its own logs while the terminal is otherwise
// owned by the UI.
//
// Install a Handler as the slog output, then read the buffer back with
// Records and drop it with Clear. The buffer holds the most recent
// records and silently discards the oldest once full.
package logbuf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Record is one captured log line
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// bufferCap bounds the process-wide buffer
const bufferCap = 1000

var (
	mu      sync.Mutex
	records []Record
)

// Handler is a slog.Handler that appends every accepted record to the
// process-wide buffer. Handlers derived via WithAttrs and WithGroup all
// feed the same buffer.
type Handler struct {
	level slog.Level
	// attrs holds "key=value" parts already qualified with the groups
	// that were open when they were attached
	attrs []string
	// prefix qualifies record attribute keys with the open groups
	prefix string
}

// NewHandler creates a handler accepting records at or above level
func NewHandler(level slog.Level) *Handler {
	return &Handler{level: level}
}

// Enabled reports whether the handler wants records at the given level
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as "message (key=value, ...)" and appends it
// to the buffer, dropping the oldest record when full
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message

	parts := cloneSlice(h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", h.prefix, attr.Key, attr.Value))
		return true
	})
	if len(parts) > 0 {
		message += " (" + strings.Join(parts, ", ") + ")"
	}

	mu.Lock()
	defer mu.Unlock()
	if len(records) >= bufferCap {
		copy(records, records[1:])
		records = records[:len(records)-1]
	}
	records = append(records, Record{
		Time:    record.Time,
		Level:   record.Level,
		Message: message,
	})
	return nil
}

// WithAttrs returns a derived handler carrying the extra attributes
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := &Handler{
		level:  h.level,
		attrs:  cloneSlice(h.attrs),
		prefix: h.prefix,
	}
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs,
			fmt.Sprintf("%s%s=%s", h.prefix, attr.Key, attr.Value))
	}
	return derived
}

// WithGroup returns a derived handler qualifying attribute keys with
// the group name
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		level:  h.level,
		attrs:  cloneSlice(h.attrs),
		prefix: h.prefix + name + ".",
	}
}

// Records returns a snapshot of the buffered records, oldest first
func Records() []Record {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Clear drops all buffered records
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	records = nil
}

// cloneSlice copies a slice so derived handlers never alias their parent
func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}
