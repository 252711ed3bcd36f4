package graphstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "E1", "label": "Episode One"},
			{"id": 42, "label": "Alice"}
		],
		"edges": [
			{"source": "E1", "target": 42, "relType": "has guest"}
		]
	}`

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ds.Nodes, 2)
	assert.Equal(t, "42", ds.Nodes[1].ID)
	require.Len(t, ds.Edges, 1)
	assert.Equal(t, "42", ds.Edges[0].Target)
	assert.Equal(t, "has guest", ds.Edges[0].RelType)
}

func TestDecodeEmptyLists(t *testing.T) {
	ds, err := Decode([]byte(`{"nodes": [], "edges": []}`))
	require.NoError(t, err)
	assert.Empty(t, ds.Nodes)
	assert.Empty(t, ds.Edges)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		section string
		field   string
	}{
		{"empty document", `   `, "", ""},
		{"not json", `{nodes:`, "", ""},
		{"array root", `[]`, "", ""},
		{"missing nodes", `{"edges": []}`, "", "nodes"},
		{"missing edges", `{"nodes": []}`, "", "edges"},
		{"nodes not a list", `{"nodes": {}, "edges": []}`, "", "nodes"},
		{"node missing id", `{"nodes": [{"label": "A"}], "edges": []}`, "nodes", "id"},
		{"node null id", `{"nodes": [{"id": null, "label": "A"}], "edges": []}`, "nodes", "id"},
		{"node label wrong type", `{"nodes": [{"id": "a", "label": 7}], "edges": []}`, "nodes", "label"},
		{"node missing label", `{"nodes": [{"id": "a"}], "edges": []}`, "nodes", "label"},
		{"node id object", `{"nodes": [{"id": {}, "label": "A"}], "edges": []}`, "nodes", "id"},
		{"edge missing target", `{"nodes": [], "edges": [{"source": "a", "relType": "x"}]}`, "edges", "target"},
		{"edge relType bool", `{"nodes": [], "edges": [{"source": "a", "target": "b", "relType": true}]}`, "edges", "relType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Decode([]byte(tt.doc))
			assert.Nil(t, ds)
			require.Error(t, err)

			var mErr *MalformedDatasetError
			require.True(t, errors.As(err, &mErr), "got %T: %v", err, err)
			assert.Equal(t, tt.section, mErr.Section)
			assert.Equal(t, tt.field, mErr.Field)
		})
	}
}

func TestMalformedDatasetErrorMessage(t *testing.T) {
	assert.Equal(t, "malformed dataset: nodes[2].label: must be a string, got number",
		malformed("nodes", 2, "label", "must be a string, got number").Error())
	assert.Equal(t, "malformed dataset: nodes: required field missing",
		malformed("", -1, "nodes", "required field missing").Error())
	assert.Equal(t, "malformed dataset: empty document",
		malformed("", -1, "", "empty document").Error())
	assert.Equal(t, "malformed dataset: edges[0]: relType cannot be empty",
		malformed("edges", 0, "", "relType cannot be empty").Error())
}
