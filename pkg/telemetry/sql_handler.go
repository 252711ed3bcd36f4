package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// DefaultTable is the table SQLHandler writes to.
const DefaultTable = "telemetry_logs"

// SQLHandler is a slog.Handler that writes error logs to a SQL database.
// The statements use '?' placeholders, which SQLite accepts.
type SQLHandler struct {
	next      slog.Handler
	db        *sql.DB
	tableName string
	attrs     []slog.Attr
	groups    []string
	onError   func(error)
}

// NewSQLHandler creates a new SQLHandler using an existing DB connection
func NewSQLHandler(next slog.Handler, db *sql.DB) (*SQLHandler, error) {
	h := &SQLHandler{
		next:      next,
		db:        db,
		tableName: DefaultTable,
		onError:   func(error) {},
	}

	if err := h.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure telemetry table: %w", err)
	}

	return h, nil
}

// OnError registers a callback for failed inserts. Logging never fails
// because the database did.
func (h *SQLHandler) OnError(fn func(error)) {
	if fn != nil {
		h.onError = fn
	}
}

func (h *SQLHandler) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(36) PRIMARY KEY,
			timestamp TIMESTAMP,
			level VARCHAR(10),
			message TEXT,
			request_id VARCHAR(36),
			request_source VARCHAR(255),
			source_file VARCHAR(255),
			line_number INT,
			attributes TEXT
		)
	`, h.tableName)

	_, err := h.db.Exec(query)
	return err
}

// Enabled implements slog.Handler
func (h *SQLHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *SQLHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always pass to next handler first
	if err := h.next.Handle(ctx, r); err != nil {
		return err
	}

	if !captured(r.Level) {
		return nil
	}

	rec := newRecord(ctx, r, h.attrs, h.groups)
	query := fmt.Sprintf(`
		INSERT INTO %s (id, timestamp, level, message, request_id, request_source, source_file, line_number, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.tableName)

	_, err := h.db.ExecContext(context.WithoutCancel(ctx), query,
		rec.ID,
		rec.Timestamp,
		rec.Level,
		rec.Message,
		rec.RequestID,
		rec.RequestSource,
		rec.SourceFile,
		rec.LineNumber,
		rec.Attributes,
	)
	if err != nil {
		h.onError(fmt.Errorf("failed to write log to SQL: %w", err))
	}

	return nil
}

// WithAttrs implements slog.Handler
func (h *SQLHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), withGroupAttrs(h.groups, attrs)...)
	return &c
}

// WithGroup implements slog.Handler
func (h *SQLHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.next = h.next.WithGroup(name)
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}
