package episodegrid

import "github.com/soundprediction/episodegrid/pkg/types"

// The Explorer interface is composed from these smaller interfaces.
// Consumers should depend on the smallest interface that meets their needs.

// SchemaProvider exposes the derived table schema.
type SchemaProvider interface {
	// Schema returns the ordered columns. It is identical for the lifetime
	// of the dataset.
	Schema() types.Schema
}

// Searcher finds candidate entities by partial label.
type Searcher interface {
	// Search returns the non-internal entities whose label contains query,
	// ignoring case, in dataset order. Blank queries return nothing.
	Search(query string) []types.Node
}

// RowProjector computes table rows for a focus entity.
type RowProjector interface {
	// Project returns one row per distinct entity with an edge into focusID,
	// sorted by label.
	Project(focusID string) types.Projection
}

// EntityResolver looks entities up by id.
type EntityResolver interface {
	Entity(id string) (types.Node, bool)
}

var _ Explorer = (*Client)(nil)
