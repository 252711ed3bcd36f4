// Package projector computes the result rows shown for a focus entity.
//
// For a focus entity F, every edge X -> F contributes X as a candidate row.
// Candidates are deduplicated by id (first occurrence wins) and sorted by
// label with a locale-aware collator; the sort is stable so equal labels keep
// edge order. Each row is then filled from all of X's outgoing edges, not just
// the ones into F, with one chip per edge placed in the column keyed by the
// edge's relType.
package projector

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/soundprediction/episodegrid/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Graph is the part of a graph store the projector reads.
type Graph interface {
	Node(id string) (types.Node, bool)
	EdgesTo(id string) []types.Edge
	EdgesFrom(id string) []types.Edge
}

// UnresolvedFocusWarning is logged when Project is asked about an id the
// store does not know. It is never returned to callers.
type UnresolvedFocusWarning struct {
	FocusID string
}

func (w *UnresolvedFocusWarning) Error() string {
	return fmt.Sprintf("focus entity %q does not resolve to a node", w.FocusID)
}

// Option configures a Projector.
type Option func(*Projector)

// WithLanguage sets the collation language used to order rows.
func WithLanguage(tag language.Tag) Option {
	return func(p *Projector) {
		p.lang = tag
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Projector) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Projector turns a focus id into table rows.
type Projector struct {
	graph  Graph
	schema types.Schema
	lang   language.Tag
	logger *slog.Logger

	// collate.Collator keeps internal buffers and is not safe for
	// concurrent use.
	mu       sync.Mutex
	collator *collate.Collator
}

// New creates a Projector over graph using schema to place chips.
func New(graph Graph, schema types.Schema, opts ...Option) *Projector {
	p := &Projector{
		graph:  graph,
		schema: schema,
		lang:   language.English,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.collator = collate.New(p.lang)
	return p
}

// Project computes the rows for focusID. MatchCount is the raw number of
// incoming edges, before deduplication. An unknown focus yields no rows and a
// zero MatchCount.
func (p *Projector) Project(focusID string) types.Projection {
	result := types.Projection{FocusID: focusID, Rows: []types.Row{}}

	if _, ok := p.graph.Node(focusID); !ok {
		p.logger.Debug("Projection requested for unknown entity", "warning", &UnresolvedFocusWarning{FocusID: focusID})
		return result
	}

	incoming := p.graph.EdgesTo(focusID)
	result.MatchCount = len(incoming)

	sources := p.candidateSources(incoming)
	p.sortByLabel(sources)

	for _, src := range sources {
		result.Rows = append(result.Rows, p.buildRow(src, focusID))
	}
	return result
}

// candidateSources resolves and deduplicates the sources of incoming edges.
func (p *Projector) candidateSources(incoming []types.Edge) []types.Node {
	seen := make(map[string]bool, len(incoming))
	sources := make([]types.Node, 0, len(incoming))
	for _, e := range incoming {
		if seen[e.Source] {
			continue
		}
		node, ok := p.graph.Node(e.Source)
		if !ok {
			continue
		}
		seen[e.Source] = true
		sources = append(sources, node)
	}
	return sources
}

func (p *Projector) sortByLabel(nodes []types.Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sort.SliceStable(nodes, func(i, j int) bool {
		return p.collator.CompareString(nodes[i].Label, nodes[j].Label) < 0
	})
}

// Compare orders two labels the way rows are ordered.
func (p *Projector) Compare(a, b string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collator.CompareString(a, b)
}

func (p *Projector) buildRow(src types.Node, focusID string) types.Row {
	row := types.Row{
		EntityID: src.ID,
		Label:    src.Label,
		Cells:    make(map[string][]types.Chip),
	}
	for _, e := range p.graph.EdgesFrom(src.ID) {
		col, ok := p.schema.ColumnFor(e.RelType)
		if !ok {
			// relTypes that appeared after the schema was derived have no column.
			continue
		}
		target, ok := p.graph.Node(e.Target)
		if !ok {
			continue
		}
		row.Cells[col.Key] = append(row.Cells[col.Key], types.Chip{
			Label:    target.Label,
			EntityID: target.ID,
			IsFocus:  target.ID == focusID,
		})
	}
	return row
}
