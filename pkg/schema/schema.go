// Package schema derives the episodegrid table shape from the relationship
// types present in a graph store.
package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/soundprediction/episodegrid/pkg/types"
)

// EdgeSource is the part of a graph store the deriver reads.
type EdgeSource interface {
	Edges() []types.Edge
}

// reserved relTypes, in fixed column order.
var reserved = []string{types.RelTypeHasGuest, types.RelTypeDiscussedTopic}

// Derive computes the column schema: Episode, Has Guest, Discussed Topic,
// then every other distinct relType in first-seen edge order. The result is
// a pure function of the edge sequence.
func Derive(src EdgeSource) types.Schema {
	cols := []types.Column{{Key: types.EpisodeColumnKey, Title: "Episode", Fixed: true}}
	for _, rel := range reserved {
		cols = append(cols, types.Column{Key: rel, Title: Title(rel), RelType: rel, Fixed: true})
	}

	seen := make(map[string]bool, len(reserved))
	titles := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c.RelType] = true
		titles[c.Title] = true
	}

	for _, e := range src.Edges() {
		// An empty relType maps to no column; seen[""] is set by the episode column.
		if seen[e.RelType] {
			continue
		}
		seen[e.RelType] = true

		title := Title(e.RelType)
		if titles[title] {
			// Distinct relTypes can title-case alike ("has guest" and
			// "Has guest"); keep them apart for display.
			title = title + " (" + e.RelType + ")"
		}
		titles[title] = true

		cols = append(cols, types.Column{Key: e.RelType, Title: title, RelType: e.RelType})
	}

	return types.Schema{Columns: cols}
}

// Title turns a relType into a column header by upper-casing the first
// character of every space separated word.
func Title(relType string) string {
	words := strings.Split(relType, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
