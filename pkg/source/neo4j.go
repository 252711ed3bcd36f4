package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
)

const (
	neo4jNodesQuery = `
		MATCH (n)
		RETURN coalesce(n.id, elementId(n)) AS id,
		       coalesce(n.label, n.name) AS label
		ORDER BY id
	`

	// Relationships without a relType property fall back to their type,
	// e.g. HAS_GUEST becomes "has guest".
	neo4jEdgesQuery = `
		MATCH (s)-[r]->(t)
		RETURN coalesce(s.id, elementId(s)) AS source,
		       coalesce(t.id, elementId(t)) AS target,
		       coalesce(r.relType, toLower(replace(type(r), '_', ' '))) AS relType
		ORDER BY elementId(r)
	`
)

// Neo4jSource reads the dataset from a Neo4j database.
type Neo4jSource struct {
	URI      string
	Username string
	Password string
	Database string
}

// Fetch connects, reads all nodes and relationships, and disconnects.
func (s *Neo4jSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	driver, err := neo4j.NewDriverWithContext(s.URI, neo4j.BasicAuth(s.Username, s.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	database := s.Database
	if database == "" {
		database = "neo4j"
	}

	nodeRes, err := neo4j.ExecuteQuery(ctx, driver, neo4jNodesQuery, nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	edgeRes, err := neo4j.ExecuteQuery(ctx, driver, neo4jEdgesQuery, nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships: %w", err)
	}

	ds := &types.Dataset{
		Nodes: make([]types.Node, 0, len(nodeRes.Records)),
		Edges: make([]types.Edge, 0, len(edgeRes.Records)),
	}
	for i, rec := range nodeRes.Records {
		n, err := nodeFromRecord(i, rec.AsMap())
		if err != nil {
			return nil, err
		}
		ds.Nodes = append(ds.Nodes, n)
	}
	for i, rec := range edgeRes.Records {
		e, err := edgeFromRecord(i, rec.AsMap())
		if err != nil {
			return nil, err
		}
		ds.Edges = append(ds.Edges, e)
	}
	return ds, nil
}

func (s *Neo4jSource) String() string {
	return "neo4j:" + s.URI
}

func nodeFromRecord(i int, rec map[string]any) (types.Node, error) {
	id, err := recordID(rec["id"])
	if err != nil {
		return types.Node{}, &graphstore.MalformedDatasetError{Section: "nodes", Index: i, Field: "id", Reason: err.Error()}
	}
	label, ok := rec["label"].(string)
	if !ok {
		return types.Node{}, &graphstore.MalformedDatasetError{Section: "nodes", Index: i, Field: "label", Reason: fmt.Sprintf("must be a string, got %T", rec["label"])}
	}
	return types.Node{ID: id, Label: label}, nil
}

func edgeFromRecord(i int, rec map[string]any) (types.Edge, error) {
	var e types.Edge
	var err error
	if e.Source, err = recordID(rec["source"]); err != nil {
		return types.Edge{}, &graphstore.MalformedDatasetError{Section: "edges", Index: i, Field: "source", Reason: err.Error()}
	}
	if e.Target, err = recordID(rec["target"]); err != nil {
		return types.Edge{}, &graphstore.MalformedDatasetError{Section: "edges", Index: i, Field: "target", Reason: err.Error()}
	}
	relType, ok := rec["relType"].(string)
	if !ok {
		return types.Edge{}, &graphstore.MalformedDatasetError{Section: "edges", Index: i, Field: "relType", Reason: fmt.Sprintf("must be a string, got %T", rec["relType"])}
	}
	e.RelType = relType
	return e, nil
}

// recordID converts a Neo4j id property to its string form.
func recordID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("required field missing")
	default:
		return "", fmt.Errorf("must be a string or number, got %T", v)
	}
}
