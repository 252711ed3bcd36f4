package episodegrid

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/config"
	"github.com/soundprediction/episodegrid/pkg/logger"
	"github.com/soundprediction/episodegrid/pkg/source"
	"github.com/soundprediction/episodegrid/pkg/telemetry"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

// Close flushes telemetry sinks.
func (r *runtime) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// setup loads and validates configuration and builds the logger chain:
// colour handler, then optional parquet and SQLite telemetry sinks.
func setup(w io.Writer) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	var handler slog.Handler = logger.NewLogger(w, level, cfg.Log.Format).Handler()

	if path := cfg.Telemetry.ParquetPath; path != "" {
		ph, err := telemetry.NewParquetHandler(handler, path, cfg.Telemetry.BatchSize)
		if err != nil {
			return nil, err
		}
		handler = ph
		rt.closers = append(rt.closers, ph)
	}

	if path := cfg.Telemetry.DBPath; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
		}
		db, err := sql.Open("sqlite3", "file:"+path)
		if err != nil {
			return nil, fmt.Errorf("failed to open telemetry database: %w", err)
		}
		sh, err := telemetry.NewSQLHandler(handler, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		sh.OnError(func(err error) { fmt.Fprintln(os.Stderr, err) })
		handler = sh
		rt.closers = append(rt.closers, db)
	}

	rt.logger = slog.New(handler)
	return rt, nil
}

// clientConfig maps the view settings onto the explorer config.
func clientConfig(cfg *config.Config) *episodegrid.Config {
	return &episodegrid.Config{
		Language:    cfg.View.Language,
		SearchLimit: cfg.View.SearchLimit,
	}
}

// sourceOptions maps the dataset settings onto source options.
func sourceOptions(cfg config.DatasetConfig) source.Options {
	return source.Options{
		Driver:   cfg.Driver,
		URI:      cfg.URI,
		Username: cfg.Username,
		Password: cfg.Password,
		Database: cfg.Database,
		Repair:   cfg.Repair,
		Timeout:  cfg.Timeout,
	}
}

// open fetches and loads the configured dataset.
func (r *runtime) open(ctx context.Context) (*episodegrid.Client, error) {
	src, err := source.New(sourceOptions(r.cfg.Dataset))
	if err != nil {
		return nil, err
	}
	return episodegrid.Open(ctx, src, clientConfig(r.cfg), r.logger)
}
