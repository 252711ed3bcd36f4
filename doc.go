// Package episodegrid projects a small read-only graph of episodes, guests,
// topics and other entities into a searchable table.
//
// A user finds an entity by name; episodegrid then lists, one row per related
// episode, every entity connected to that episode, grouped into columns by
// relationship type. The columns are derived from the relationship types
// present in the data.
//
// # Basic Usage
//
//	src, err := source.New(source.Options{URI: "data.json"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := episodegrid.Open(ctx, src, nil, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(client.Schema().Titles()) // [Episode Has Guest Discussed Topic ...]
//
//	for _, node := range client.Search("alice") {
//		projection := client.Project(node.ID)
//		fmt.Printf("Showing %d results for %s\n", projection.MatchCount, node.Label)
//	}
//
// # Components
//
//   - pkg/graphstore: the immutable node/edge store and dataset decoding
//   - pkg/schema: column derivation from relationship types
//   - pkg/search: substring search over entity labels
//   - pkg/projector: result rows for a focus entity
//   - pkg/view: the interactive Idle/Results state machine
//   - pkg/render: HTML and terminal rendering of a view snapshot
//   - pkg/server: the HTTP surface
//   - pkg/source: dataset sources (file, HTTP, Neo4j, SQLite)
//
// # Interactive View
//
// The view controller consumes three events, QueryChanged, CandidateSelected
// and ChipSelected, and produces snapshots for a renderer:
//
//	ctrl := view.NewController(logger)
//	ctrl.Attach(client)
//	snap := ctrl.Dispatch(view.QueryChanged("ali"))
//	snap = ctrl.Dispatch(view.CandidateSelected(snap.Candidates[0].ID))
//	fmt.Println(snap.Status) // Showing 2 results for Alice
package episodegrid
