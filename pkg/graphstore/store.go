package graphstore

import (
	"fmt"
	"log/slog"

	"github.com/soundprediction/episodegrid/pkg/types"
)

// Store is the immutable node/edge dataset. It has no mutation API and is
// safe for concurrent reads.
type Store struct {
	nodes    []types.Node
	edges    []types.Edge
	index    map[string]int
	bySource map[string][]int
	byTarget map[string][]int
	skipped  []*DanglingReferenceError
}

// Load validates ds and builds a Store. Structural problems fail the load;
// dangling edges are skipped and logged.
func Load(ds *types.Dataset, logger *slog.Logger) (*Store, error) {
	if ds == nil {
		return nil, malformed("", -1, "", "dataset is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		nodes:    make([]types.Node, 0, len(ds.Nodes)),
		index:    make(map[string]int, len(ds.Nodes)),
		bySource: make(map[string][]int),
		byTarget: make(map[string][]int),
	}

	for i, n := range ds.Nodes {
		if err := n.Validate(); err != nil {
			return nil, malformed("nodes", i, "id", err.Error())
		}
		if prev, dup := s.index[n.ID]; dup {
			return nil, malformed("nodes", i, "id", fmt.Sprintf("duplicate id %q (first seen at nodes[%d])", n.ID, prev))
		}
		s.index[n.ID] = len(s.nodes)
		s.nodes = append(s.nodes, n)
	}

	s.edges = make([]types.Edge, 0, len(ds.Edges))
	for i, e := range ds.Edges {
		if err := e.Validate(); err != nil {
			return nil, malformed("edges", i, "", err.Error())
		}
		if dangling := s.dangling(i, e); dangling != nil {
			logger.Warn("Skipping edge with dangling reference",
				"edge_index", i,
				"field", dangling.Field,
				"id", dangling.ID,
				"rel_type", e.RelType,
				"error", dangling)
			s.skipped = append(s.skipped, dangling)
			continue
		}
		pos := len(s.edges)
		s.edges = append(s.edges, e)
		s.bySource[e.Source] = append(s.bySource[e.Source], pos)
		s.byTarget[e.Target] = append(s.byTarget[e.Target], pos)
	}

	logger.Info("Graph store loaded",
		"nodes", len(s.nodes),
		"edges", len(s.edges),
		"skipped_edges", len(s.skipped))

	return s, nil
}

func (s *Store) dangling(i int, e types.Edge) *DanglingReferenceError {
	if _, ok := s.index[e.Source]; !ok {
		return &DanglingReferenceError{EdgeIndex: i, Field: "source", ID: e.Source}
	}
	if _, ok := s.index[e.Target]; !ok {
		return &DanglingReferenceError{EdgeIndex: i, Field: "target", ID: e.Target}
	}
	return nil
}

// Node looks up a node by id.
func (s *Store) Node(id string) (types.Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return types.Node{}, false
	}
	return s.nodes[i], true
}

// Nodes returns all nodes in load order.
func (s *Store) Nodes() []types.Node {
	out := make([]types.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns all retained edges in load order.
func (s *Store) Edges() []types.Edge {
	out := make([]types.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// EdgesTo returns the edges whose target is id, in load order.
func (s *Store) EdgesTo(id string) []types.Edge {
	return s.pick(s.byTarget[id])
}

// EdgesFrom returns the edges whose source is id, in load order.
func (s *Store) EdgesFrom(id string) []types.Edge {
	return s.pick(s.bySource[id])
}

func (s *Store) pick(positions []int) []types.Edge {
	out := make([]types.Edge, len(positions))
	for i, p := range positions {
		out[i] = s.edges[p]
	}
	return out
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// EdgeCount returns the number of retained edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Skipped returns the dangling edges dropped at load.
func (s *Store) Skipped() []*DanglingReferenceError {
	out := make([]*DanglingReferenceError, len(s.skipped))
	copy(out, s.skipped)
	return out
}
