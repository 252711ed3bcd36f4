package types

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmptyID      = errors.New("id cannot be empty")
	ErrEmptySource  = errors.New("source cannot be empty")
	ErrEmptyTarget  = errors.New("target cannot be empty")
	ErrEmptyRelType = errors.New("relType cannot be empty")
)

// ReservedMarker prefixes labels of internal entities. Such entities take part
// in edges but are never offered as search candidates.
const ReservedMarker = "#"

// Reserved relationship types that always get a fixed column.
const (
	RelTypeHasGuest       = "has guest"
	RelTypeDiscussedTopic = "discussed topic"
)

// contextKey is an unexported type for context keys set by episodegrid.
type contextKey string

const (
	// ContextKeyRequestID carries the per-request id assigned by the HTTP server.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyRequestSource records which surface (server, cli) issued a call.
	ContextKeyRequestSource contextKey = "request_source"
)

// Node represents an entity in the graph.
type Node struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Validate checks if the Node has all required fields set.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	return nil
}

// IsInternal reports whether the node is hidden from search.
func (n Node) IsInternal() bool {
	return strings.HasPrefix(n.Label, ReservedMarker)
}

// Edge represents a directed, typed relationship. Target is the focus side,
// Source is the entity that contributes a row.
type Edge struct {
	Source  string `json:"source" yaml:"source" mapstructure:"source"`
	Target  string `json:"target" yaml:"target" mapstructure:"target"`
	RelType string `json:"relType" yaml:"relType" mapstructure:"relType"`
}

// Validate checks if the Edge has all required fields set.
func (e *Edge) Validate() error {
	if e.Source == "" {
		return ErrEmptySource
	}
	if e.Target == "" {
		return ErrEmptyTarget
	}
	if e.RelType == "" {
		return ErrEmptyRelType
	}
	return nil
}

// Dataset is the raw document a graph store is built from.
type Dataset struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}
