package view

import (
	"fmt"
	"strings"
)

// EventKind enumerates the inputs the controller accepts.
type EventKind int

const (
	// EventQueryChanged carries the new search field text.
	EventQueryChanged EventKind = iota
	// EventCandidateSelected carries the id of a picked search candidate.
	EventCandidateSelected
	// EventChipSelected carries the id of a clicked chip's entity.
	EventChipSelected
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQueryChanged:
		return "query_changed"
	case EventCandidateSelected:
		return "candidate_selected"
	case EventChipSelected:
		return "chip_selected"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "query_changed":
		return EventQueryChanged, nil
	case "candidate_selected":
		return EventCandidateSelected, nil
	case "chip_selected":
		return EventChipSelected, nil
	default:
		return 0, fmt.Errorf("unknown event type %q", s)
	}
}

// Event is a single user input forwarded by the presentation layer.
type Event struct {
	Kind     EventKind
	Text     string
	EntityID string
}

// QueryChanged builds an EventQueryChanged.
func QueryChanged(text string) Event {
	return Event{Kind: EventQueryChanged, Text: text}
}

// CandidateSelected builds an EventCandidateSelected.
func CandidateSelected(entityID string) Event {
	return Event{Kind: EventCandidateSelected, EntityID: entityID}
}

// ChipSelected builds an EventChipSelected.
func ChipSelected(entityID string) Event {
	return Event{Kind: EventChipSelected, EntityID: entityID}
}
