package episodegrid

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/config"
	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExplorer(t *testing.T) *episodegrid.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := graphstore.Load(&types.Dataset{
		Nodes: []types.Node{
			{ID: "E1", Label: "Episode One"},
			{ID: "G1", Label: "Alice Cooper"},
			{ID: "G2", Label: "Alice"},
		},
		Edges: []types.Edge{
			{Source: "E1", Target: "G1", RelType: "has guest"},
			{Source: "E1", Target: "G2", RelType: "has guest"},
		},
	}, logger)
	require.NoError(t, err)
	client, err := episodegrid.NewClient(store, nil, logger)
	require.NoError(t, err)
	return client
}

func TestResolveFocus(t *testing.T) {
	explorer := testExplorer(t)

	tests := []struct {
		arg    string
		want   string
		wantOK bool
	}{
		{arg: "G1", want: "G1", wantOK: true},
		{arg: "alice", want: "G2", wantOK: true},
		{arg: "cooper", want: "G1", wantOK: true},
		{arg: "episode", want: "E1", wantOK: true},
		{arg: "nobody", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, ok := resolveFocus(explorer, tt.arg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSchema(&buf, testExplorer(t).Schema()))
	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Regexp(t, `Has Guest\s+has guest\s+true`, out)
	assert.Regexp(t, `Discussed Topic\s+discussed topic\s+true`, out)
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCandidates(&buf, testExplorer(t).Search("alice")))
	assert.Regexp(t, `G1\s+Alice Cooper`, buf.String())
	assert.Regexp(t, `G2\s+Alice\n`, buf.String())
}

func TestSourceOptions(t *testing.T) {
	opts := sourceOptions(config.DatasetConfig{Driver: "neo4j", URI: "bolt://x", Username: "u", Password: "p", Repair: true})
	assert.Equal(t, "neo4j", opts.Driver)
	assert.Equal(t, "bolt://x", opts.URI)
	assert.Equal(t, "u", opts.Username)
	assert.True(t, opts.Repair)
}
