package search

import (
	"strings"

	"github.com/soundprediction/episodegrid/pkg/types"
)

// NodeSource is the part of a graph store the index reads.
type NodeSource interface {
	Nodes() []types.Node
}

type entry struct {
	node  types.Node
	lower string
}

// Index answers substring queries over searchable node labels.
type Index struct {
	entries []entry
}

// NewIndex builds an index over every non-internal node of src.
func NewIndex(src NodeSource) *Index {
	nodes := src.Nodes()
	idx := &Index{entries: make([]entry, 0, len(nodes))}
	for _, n := range nodes {
		if n.IsInternal() {
			continue
		}
		idx.entries = append(idx.entries, entry{node: n, lower: strings.ToLower(n.Label)})
	}
	return idx
}

// Search returns the searchable nodes whose label contains query, ignoring
// case. The result is never nil.
func (idx *Index) Search(query string) []types.Node {
	return idx.SearchLimit(query, 0)
}

// SearchLimit is Search capped at limit results. A limit <= 0 means no cap.
func (idx *Index) SearchLimit(query string, limit int) []types.Node {
	matches := []types.Node{}

	q := strings.TrimSpace(query)
	if q == "" {
		return matches
	}
	// Containment is tested against the query as typed; only the
	// empty check trims.
	needle := strings.ToLower(query)

	for _, e := range idx.entries {
		if !strings.Contains(e.lower, needle) {
			continue
		}
		matches = append(matches, e.node)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// Count returns how many searchable nodes Search would return for query.
func (idx *Index) Count(query string) int {
	if strings.TrimSpace(query) == "" {
		return 0
	}
	needle := strings.ToLower(query)
	n := 0
	for _, e := range idx.entries {
		if strings.Contains(e.lower, needle) {
			n++
		}
	}
	return n
}

// Size returns the number of searchable nodes.
func (idx *Index) Size() int {
	return len(idx.entries)
}
