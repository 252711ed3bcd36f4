package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
)

// SQLiteSchema is the layout SQLiteSource expects. Rows are read in rowid
// order, which becomes the dataset order.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS nodes (
    id    TEXT PRIMARY KEY,
    label TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
    source   TEXT NOT NULL,
    target   TEXT NOT NULL,
    rel_type TEXT NOT NULL
);
`

// SQLiteSource reads the dataset from a SQLite database file.
type SQLiteSource struct {
	Path string
}

// Fetch opens the database read-only and reads both tables.
func (s *SQLiteSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite dataset: %w", err)
	}
	defer db.Close()

	ds := &types.Dataset{Nodes: []types.Node{}, Edges: []types.Edge{}}

	rows, err := db.QueryContext(ctx, `SELECT id, label FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	for i := 0; rows.Next(); i++ {
		var id, label sql.NullString
		if err := rows.Scan(&id, &label); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan node %d: %w", i, err)
		}
		if !id.Valid {
			rows.Close()
			return nil, &graphstore.MalformedDatasetError{Section: "nodes", Index: i, Field: "id", Reason: "required field missing"}
		}
		if !label.Valid {
			rows.Close()
			return nil, &graphstore.MalformedDatasetError{Section: "nodes", Index: i, Field: "label", Reason: "required field missing"}
		}
		ds.Nodes = append(ds.Nodes, types.Node{ID: id.String, Label: label.String})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("read nodes: %w", err)
	}
	rows.Close()

	edgeRows, err := db.QueryContext(ctx, `SELECT source, target, rel_type FROM edges ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer edgeRows.Close()
	for i := 0; edgeRows.Next(); i++ {
		var e types.Edge
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.RelType); err != nil {
			return nil, fmt.Errorf("scan edge %d: %w", i, err)
		}
		ds.Edges = append(ds.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}

	return ds, nil
}

func (s *SQLiteSource) String() string {
	return "sqlite:" + s.Path
}
