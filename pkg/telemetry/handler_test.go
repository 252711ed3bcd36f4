package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func parquetFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	return matches
}

func TestParquetHandlerCapturesErrorsOnly(t *testing.T) {
	dir := t.TempDir()
	h, err := NewParquetHandler(discard(), dir, 10)
	require.NoError(t, err)
	log := slog.New(h)

	ctx := context.WithValue(context.Background(), types.ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "server")

	log.InfoContext(ctx, "not captured")
	log.WarnContext(ctx, "not captured either")
	log.ErrorContext(ctx, "Dataset unavailable, search disabled", "error", errors.New("connection refused"))

	assert.Empty(t, parquetFiles(t, dir), "below batch size nothing is written")
	require.NoError(t, h.Close())

	files := parquetFiles(t, dir)
	require.Len(t, files, 1)

	records, err := ReadParquetFile(files[0])
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "ERROR", rec.Level)
	assert.Equal(t, "Dataset unavailable, search disabled", rec.Message)
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, "server", rec.RequestSource)
	assert.NotEmpty(t, rec.ID)
	assert.Contains(t, rec.SourceFile, "handler_test.go")

	var attrs map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.Attributes), &attrs))
	assert.Equal(t, "connection refused", attrs["error"])
}

func TestParquetHandlerFlushesAtBatchSize(t *testing.T) {
	dir := t.TempDir()
	h, err := NewParquetHandler(discard(), dir, 2)
	require.NoError(t, err)
	log := slog.New(h)

	log.Error("one")
	log.Error("two")
	assert.Len(t, parquetFiles(t, dir), 1)

	log.Error("three")
	require.NoError(t, h.Close())
	assert.Len(t, parquetFiles(t, dir), 2)

	require.NoError(t, h.Close(), "closing an empty buffer is a no-op")
	assert.Len(t, parquetFiles(t, dir), 2)
}

func TestParquetHandlerClonesShareBuffer(t *testing.T) {
	dir := t.TempDir()
	h, err := NewParquetHandler(discard(), dir, 0)
	require.NoError(t, err)

	base := slog.New(h)
	child := base.With("component", "source").WithGroup("fetch")

	base.Error("base failure")
	child.Error("child failure", "uri", "graph.json")
	require.NoError(t, h.Close())

	files := parquetFiles(t, dir)
	require.Len(t, files, 1)
	records, err := ReadParquetFile(files[0])
	require.NoError(t, err)
	require.Len(t, records, 2)

	var attrs map[string]any
	require.NoError(t, json.Unmarshal([]byte(records[1].Attributes), &attrs))
	assert.Equal(t, "source", attrs["component"])
	assert.Equal(t, "graph.json", attrs["fetch.uri"])
}

func TestNewParquetHandlerBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewParquetHandler(discard(), filepath.Join(file, "sub"), 1)
	assert.Error(t, err)
}
