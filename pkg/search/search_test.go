package search

import (
	"testing"

	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/stretchr/testify/assert"
)

type nodeList []types.Node

func (l nodeList) Nodes() []types.Node { return l }

func sampleNodes() nodeList {
	return nodeList{
		{ID: "E1", Label: "Episode One"},
		{ID: "E2", Label: "Episode Two"},
		{ID: "G1", Label: "Alice"},
		{ID: "T1", Label: "Space"},
		{ID: "H1", Label: "#episode-internal"},
		{ID: "G2", Label: "Stephen Hawking"},
	}
}

func ids(nodes []types.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	idx := NewIndex(sampleNodes())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"prefix", "ep", []string{"E1", "E2"}},
		{"case insensitive", "EPISODE", []string{"E1", "E2"}},
		{"middle of label", "phen", []string{"G2"}},
		{"single match", "alice", []string{"G1"}},
		{"no match", "zzz", []string{}},
		{"spans words", "one", []string{"E1"}},
		{"internal never matches", "internal", []string{}},
		{"marker never matches", "#", []string{}},
		{"inner space kept", "e t", []string{"E2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(idx.Search(tt.query)))
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := NewIndex(sampleNodes())

	for _, q := range []string{"", "   ", "\t\n"} {
		got := idx.Search(q)
		assert.NotNil(t, got)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestSearchExcludesInternalLabels(t *testing.T) {
	idx := NewIndex(sampleNodes())
	assert.Equal(t, 5, idx.Size())

	for _, q := range []string{"e", "episode", "i", "-"} {
		for _, n := range idx.Search(q) {
			assert.False(t, n.IsInternal(), "query %q returned %q", q, n.Label)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	idx := NewIndex(sampleNodes())

	assert.Equal(t, []string{"E1"}, ids(idx.SearchLimit("e", 1)))
	assert.Len(t, idx.SearchLimit("e", 0), len(idx.Search("e")))
	assert.Len(t, idx.SearchLimit("e", -3), len(idx.Search("e")))
}

func TestCount(t *testing.T) {
	idx := NewIndex(sampleNodes())

	assert.Equal(t, len(idx.Search("e")), idx.Count("e"))
	assert.Equal(t, len(idx.Search("EPI")), idx.Count("EPI"))
	assert.Equal(t, 0, idx.Count("   "))
	assert.Equal(t, 0, idx.Count("no such label"))
}

func TestSearchPreservesStoreOrder(t *testing.T) {
	idx := NewIndex(nodeList{
		{ID: "3", Label: "zeta show"},
		{ID: "1", Label: "alpha show"},
		{ID: "2", Label: "mid show"},
	})
	assert.Equal(t, []string{"3", "1", "2"}, ids(idx.Search("show")))
}
