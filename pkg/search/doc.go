// Package search provides entity lookup by partial name for episodegrid.
//
// Matching is plain case-insensitive substring containment against node
// labels; there is no ranking. Results come back in the graph store's load
// order. Entities whose label starts with the reserved marker ("#") are never
// returned.
//
// # Usage
//
//	index := search.NewIndex(store)
//	candidates := index.Search("ep")
//
// # Empty Queries
//
// An empty or whitespace-only query means "no active search" and yields an
// empty candidate list rather than every entity.
//
// The index is built once from the immutable store and has no mutable state,
// so Search is safe to call from concurrent handlers and on every keystroke.
package search
