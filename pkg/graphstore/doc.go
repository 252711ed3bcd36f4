// Package graphstore holds the immutable node/edge dataset behind episodegrid.
//
// A Store is built exactly once from a decoded Dataset and exposes read-only
// lookups. Structural problems (missing ids, wrong field types, duplicate
// ids) fail the whole load with a MalformedDatasetError and no partial store
// is returned. Edges whose endpoints do not resolve are skipped and logged
// as a DanglingReferenceError warning so one bad edge does not deny the rest
// of the dataset.
//
//	ds, err := graphstore.Decode(raw)
//	if err != nil {
//	    return err
//	}
//	store, err := graphstore.Load(ds, logger)
package graphstore
