// Package telemetry captures error-level log records into durable sinks
// (parquet files or a SQL table) while passing every record on to the next
// handler unchanged.
package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/soundprediction/episodegrid/pkg/types"
)

// LogRecord represents a single captured log entry
type LogRecord struct {
	ID            string    `parquet:"id"`
	Timestamp     time.Time `parquet:"timestamp"`
	Level         string    `parquet:"level"`
	Message       string    `parquet:"message"`
	RequestID     string    `parquet:"request_id"`
	RequestSource string    `parquet:"request_source"`
	SourceFile    string    `parquet:"source_file"`
	LineNumber    int       `parquet:"line_number"`
	Attributes    string    `parquet:"attributes"` // JSON object
}

// captured reports whether a record at level is stored by the sinks.
func captured(level slog.Level) bool {
	return level >= slog.LevelError
}

// newRecord flattens r into a LogRecord. pre holds attributes bound with
// WithAttrs; group names prefix keys with dots the way slog's text handler
// does.
func newRecord(ctx context.Context, r slog.Record, pre []slog.Attr, groups []string) LogRecord {
	var requestID, requestSource string
	if v, ok := ctx.Value(types.ContextKeyRequestID).(string); ok {
		requestID = v
	}
	if v, ok := ctx.Value(types.ContextKeyRequestSource).(string); ok {
		requestSource = v
	}

	attrs := make(map[string]any)
	for _, a := range pre {
		addAttr(attrs, "", a)
	}
	prefix := ""
	for _, g := range groups {
		prefix += g + "."
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(attrs, prefix, a)
		return true
	})

	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		attrsJSON = []byte("{}")
	}

	var sourceFile string
	var line int
	if r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		sourceFile = f.File
		line = f.Line
	}

	return LogRecord{
		ID:            uuid.New().String(),
		Timestamp:     r.Time.UTC(),
		Level:         r.Level.String(),
		Message:       r.Message,
		RequestID:     requestID,
		RequestSource: requestSource,
		SourceFile:    sourceFile,
		LineNumber:    line,
		Attributes:    string(attrsJSON),
	}
}

func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			addAttr(dst, prefix+a.Key+".", ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	switch x := v.Any().(type) {
	case error:
		dst[prefix+a.Key] = x.Error()
	default:
		dst[prefix+a.Key] = v.Any()
	}
}

// withGroupAttrs returns attrs nested under the current groups so captured
// keys match what the text handler prints.
func withGroupAttrs(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(groups) == 0 {
		return attrs
	}
	anyAttrs := make([]any, len(attrs))
	for i, a := range attrs {
		anyAttrs[i] = a
	}
	nested := slog.Group(groups[len(groups)-1], anyAttrs...)
	for i := len(groups) - 2; i >= 0; i-- {
		nested = slog.Group(groups[i], nested)
	}
	return []slog.Attr{nested}
}
