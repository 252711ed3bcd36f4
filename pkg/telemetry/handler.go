package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
)

// DefaultBatchSize is the number of records buffered before a parquet file
// is written.
const DefaultBatchSize = 100

// parquetSink is the buffer shared by a ParquetHandler and its clones.
type parquetSink struct {
	mu        sync.Mutex
	outputDir string
	batchSize int
	buffer    []LogRecord
	files     int
}

// ParquetHandler is a slog.Handler that writes error logs to Parquet files
type ParquetHandler struct {
	next   slog.Handler
	sink   *parquetSink
	attrs  []slog.Attr
	groups []string
}

// NewParquetHandler creates a new ParquetHandler. batchSize <= 0 uses
// DefaultBatchSize.
func NewParquetHandler(next slog.Handler, outputDir string, batchSize int) (*ParquetHandler, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ParquetHandler{
		next: next,
		sink: &parquetSink{
			outputDir: outputDir,
			batchSize: batchSize,
			buffer:    make([]LogRecord, 0, batchSize),
		},
	}, nil
}

// Enabled implements slog.Handler
func (h *ParquetHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *ParquetHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always pass to next handler first
	if err := h.next.Handle(ctx, r); err != nil {
		return err
	}

	if !captured(r.Level) {
		return nil
	}

	record := newRecord(ctx, r, h.attrs, h.groups)

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	h.sink.buffer = append(h.sink.buffer, record)
	if len(h.sink.buffer) >= h.sink.batchSize {
		return h.sink.flush()
	}
	return nil
}

// Flush writes any buffered records.
func (h *ParquetHandler) Flush() error {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return h.sink.flush()
}

// Close flushes the buffer. The handler stays usable.
func (h *ParquetHandler) Close() error {
	return h.Flush()
}

// flush writes the current buffer to a new Parquet file
// Caller must hold the lock
func (s *parquetSink) flush() error {
	if len(s.buffer) == 0 {
		return nil
	}

	now := time.Now()
	s.files++
	filename := fmt.Sprintf("execution_errors_%s_%d_%d.parquet", now.Format("20060102_150405"), now.UnixNano(), s.files)
	path := filepath.Join(s.outputDir, filename)

	if err := parquet.WriteFile(path, s.buffer); err != nil {
		return fmt.Errorf("failed to write telemetry parquet file: %w", err)
	}

	s.buffer = s.buffer[:0]
	return nil
}

// WithAttrs implements slog.Handler
func (h *ParquetHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), withGroupAttrs(h.groups, attrs)...)
	return &c
}

// WithGroup implements slog.Handler
func (h *ParquetHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.next = h.next.WithGroup(name)
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}

// ReadParquetFile loads the records of one telemetry file.
func ReadParquetFile(path string) ([]LogRecord, error) {
	records, err := parquet.ReadFile[LogRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read telemetry parquet file: %w", err)
	}
	return records, nil
}
