package source

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteDataset(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(SQLiteSchema)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := newSQLiteDataset(t,
		`INSERT INTO nodes (id, label) VALUES ('E2', 'Episode Two'), ('E1', 'Episode One'), ('G1', 'Alice')`,
		`INSERT INTO edges (source, target, rel_type) VALUES ('E1', 'G1', 'has guest'), ('E2', 'G1', 'has guest')`,
	)

	ds, err := (&SQLiteSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Nodes, 3)
	assert.Equal(t, "E2", ds.Nodes[0].ID, "rowid order is preserved")
	require.Len(t, ds.Edges, 2)
	assert.Equal(t, "E1", ds.Edges[0].Source)
	assert.Equal(t, "has guest", ds.Edges[1].RelType)
}

func TestSQLiteSourceEmpty(t *testing.T) {
	ds, err := (&SQLiteSource{Path: newSQLiteDataset(t)}).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds.Nodes)
	assert.Empty(t, ds.Nodes)
	assert.Empty(t, ds.Edges)
}

func TestSQLiteSourceMissingTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE other (x TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = (&SQLiteSource{Path: path}).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query nodes")
}

func TestSQLiteSourceNullLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loose.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE nodes (id TEXT, label TEXT); CREATE TABLE edges (source TEXT, target TEXT, rel_type TEXT);
		INSERT INTO nodes (id, label) VALUES ('a', NULL);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = (&SQLiteSource{Path: path}).Fetch(context.Background())
	var mErr *graphstore.MalformedDatasetError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, "label", mErr.Field)
}
