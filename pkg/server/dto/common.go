package dto

import (
	"errors"
	"strings"

	"github.com/soundprediction/episodegrid/pkg/view"
)

// Validation errors
var (
	ErrEmptyType     = errors.New("type cannot be empty")
	ErrEmptyEntityID = errors.New("entity_id cannot be empty for selection events")
	ErrTextTooLong   = errors.New("text exceeds maximum length (1024)")
	ErrIDTooLong     = errors.New("entity_id exceeds maximum length (1024)")
)

// MaxFieldLengths defines maximum lengths for fields to prevent abuse
const (
	MaxTextLength     = 1024
	MaxEntityIDLength = 1024
	MaxSearchLimit    = 1000
)

// EventRequest is one view event posted by a client.
type EventRequest struct {
	Type     string `json:"type" binding:"required"`
	Text     string `json:"text,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
}

// Validate performs validation on EventRequest
func (r *EventRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" {
		return ErrEmptyType
	}
	kind, err := view.ParseEventKind(r.Type)
	if err != nil {
		return err
	}
	if len(r.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	if len(r.EntityID) > MaxEntityIDLength {
		return ErrIDTooLong
	}
	if kind != view.EventQueryChanged && r.EntityID == "" {
		return ErrEmptyEntityID
	}
	return nil
}

// Event converts a validated request into a view event.
func (r *EventRequest) Event() (view.Event, error) {
	if err := r.Validate(); err != nil {
		return view.Event{}, err
	}
	kind, _ := view.ParseEventKind(r.Type)
	return view.Event{Kind: kind, Text: r.Text, EntityID: r.EntityID}, nil
}

// Result represents a generic API result
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SearchResponse lists search candidates.
type SearchResponse struct {
	Query      string          `json:"query"`
	Candidates []CandidateItem `json:"candidates"`
	// Total counts every match, before any limit is applied.
	Total int `json:"total"`
}

// CandidateItem is one search candidate.
type CandidateItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
