package episodegrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/projector"
	"github.com/soundprediction/episodegrid/pkg/schema"
	"github.com/soundprediction/episodegrid/pkg/search"
	"github.com/soundprediction/episodegrid/pkg/source"
	"github.com/soundprediction/episodegrid/pkg/types"
	"golang.org/x/text/language"
)

// Explorer is the full read-only API over a loaded dataset.
type Explorer interface {
	SchemaProvider
	Searcher
	RowProjector
	EntityResolver
}

// Client is the concrete Explorer. The schema is derived once at
// construction and never recomputed.
type Client struct {
	store     *graphstore.Store
	schema    types.Schema
	index     *search.Index
	projector *projector.Projector
	config    *Config
	logger    *slog.Logger
}

// Config holds the settings of a Client.
type Config struct {
	// Language is the BCP 47 tag used to collate row labels (default "en").
	Language string
	// SearchLimit caps the number of candidates returned by Search; 0 means
	// unlimited.
	SearchLimit int
}

// NewDefaultConfig returns a Config with default settings.
func NewDefaultConfig() *Config {
	return &Config{Language: "en"}
}

// NewClient builds an Explorer over an already loaded store.
func NewClient(store *graphstore.Store, config *Config, logger *slog.Logger) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("graph store is required")
	}
	if config == nil {
		config = NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	tag := language.English
	if config.Language != "" {
		parsed, err := language.Parse(config.Language)
		if err != nil {
			return nil, fmt.Errorf("invalid collation language %q: %w", config.Language, err)
		}
		tag = parsed
	}

	derived := schema.Derive(store)
	logger.Info("Schema derived", "columns", derived.Titles())

	return &Client{
		store:     store,
		schema:    derived,
		index:     search.NewIndex(store),
		projector: projector.New(store, derived, projector.WithLanguage(tag), projector.WithLogger(logger)),
		config:    config,
		logger:    logger,
	}, nil
}

// Schema returns the column schema derived at construction.
func (c *Client) Schema() types.Schema {
	cols := make([]types.Column, len(c.schema.Columns))
	copy(cols, c.schema.Columns)
	return types.Schema{Columns: cols}
}

// Search returns the candidate entities whose label contains query.
func (c *Client) Search(query string) []types.Node {
	return c.index.SearchLimit(query, c.config.SearchLimit)
}

// Count returns the number of entities matching query, ignoring SearchLimit.
func (c *Client) Count(query string) int {
	return c.index.Count(query)
}

// Project computes the result rows for focusID.
func (c *Client) Project(focusID string) types.Projection {
	return c.projector.Project(focusID)
}

// Entity looks up a node by id.
func (c *Client) Entity(id string) (types.Node, bool) {
	return c.store.Node(id)
}

// Stats summarizes the loaded dataset.
func (c *Client) Stats() Stats {
	return Stats{
		Nodes:        c.store.Len(),
		Edges:        c.store.EdgeCount(),
		SkippedEdges: len(c.store.Skipped()),
		Searchable:   c.index.Size(),
		Columns:      len(c.schema.Columns),
	}
}

// Stats describes a loaded dataset.
type Stats struct {
	Nodes        int `json:"nodes"`
	Edges        int `json:"edges"`
	SkippedEdges int `json:"skipped_edges"`
	Searchable   int `json:"searchable"`
	Columns      int `json:"columns"`
}

// Load stages reported by LoadError.
const (
	StageFetch = "fetch"
	StageLoad  = "load"
	StageIndex = "index"
)

// LoadError wraps a failure during Open with the stage that failed.
type LoadError struct {
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Open fetches the dataset from src, loads it and builds a Client. Nothing
// downstream of the fetch runs until it has resolved. Failures are never
// retried.
func Open(ctx context.Context, src source.Source, config *Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Fetching dataset", "source", src.String())
	ds, err := src.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Stage: StageFetch, Err: err}
	}

	store, err := graphstore.Load(ds, logger)
	if err != nil {
		return nil, &LoadError{Stage: StageLoad, Err: err}
	}

	client, err := NewClient(store, config, logger)
	if err != nil {
		return nil, &LoadError{Stage: StageIndex, Err: err}
	}
	return client, nil
}
