// Package types defines the core data types for the episodegrid table view.
//
// This package contains the fundamental types used throughout episodegrid:
//   - Node: an addressable entity in the graph (episode, guest, topic, ...)
//   - Edge: a directed, typed relationship between two nodes
//   - Dataset: the raw document a graph store is loaded from
//   - Schema/Column: the ordered table shape derived from relationship types
//   - Projection/Row/Chip: the result rows for a focus entity
//
// # Edge Direction
//
// Edges point from the entity that contributes a row (usually an episode) to
// the entity a user searches for:
//
//	{source: "ep-12", target: "guest-alice", relType: "has guest"}
//
// Selecting "guest-alice" yields one row for "ep-12".
//
// # Column Identity
//
// Columns are keyed by their raw relType, never by their display title, so two
// relTypes that title-case to the same string still fill separate columns.
//
// # Validation
//
// Node and Edge provide Validate() for structural checks:
//
//	node := types.Node{ID: "ep-1", Label: "Episode One"}
//	if err := node.Validate(); err != nil {
//	    // Handle validation error
//	}
package types
