// Package source fetches the episodegrid dataset document.
//
// A dataset is fetched exactly once per session. Supported sources:
//   - file: a local .json, .yaml or .yml document
//   - http: a single GET of a JSON or YAML document
//   - neo4j: nodes and relationships read from a Neo4j database
//   - sqlite: nodes and edges tables in a SQLite file
//
// Sources never retry; a failed fetch is final for the session.
package source
