package graphstore

import "fmt"

// MalformedDatasetError reports a structural problem in the dataset document.
type MalformedDatasetError struct {
	// Section is "nodes", "edges" or empty for the document root.
	Section string
	// Index is the position within Section, or -1.
	Index int
	// Field is the offending field name, if known.
	Field  string
	Reason string
}

func (e *MalformedDatasetError) Error() string {
	loc := e.Section
	if e.Index >= 0 && loc != "" {
		loc = fmt.Sprintf("%s[%d]", loc, e.Index)
	}
	if e.Field != "" {
		if loc != "" {
			loc += "."
		}
		loc += e.Field
	}
	if loc == "" {
		return "malformed dataset: " + e.Reason
	}
	return fmt.Sprintf("malformed dataset: %s: %s", loc, e.Reason)
}

// Is implements errors.Is support for MalformedDatasetError.
// This allows errors.Is(err, &MalformedDatasetError{}) to work with wrapped errors.
func (e *MalformedDatasetError) Is(target error) bool {
	_, ok := target.(*MalformedDatasetError)
	return ok
}

func malformed(section string, index int, field, reason string) *MalformedDatasetError {
	return &MalformedDatasetError{Section: section, Index: index, Field: field, Reason: reason}
}

// DanglingReferenceError reports an edge endpoint that names no known node.
type DanglingReferenceError struct {
	EdgeIndex int
	// Field is "source" or "target".
	Field string
	ID    string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("edge %d: %s %q does not resolve to a node", e.EdgeIndex, e.Field, e.ID)
}

// Is implements errors.Is support for DanglingReferenceError.
func (e *DanglingReferenceError) Is(target error) bool {
	_, ok := target.(*DanglingReferenceError)
	return ok
}
