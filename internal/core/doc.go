// Package core provides the domain logic of the news review dashboard.
//
// It is independent of any transport; the web package drives it through the
// same types the tests use.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Loader: reads a delimited dataset file into an immutable [Dataset],
//     normalizing headers against a declared alias table ([Schema]).
//   - DatasetCache: memoizes loads per data path for the life of the process.
//   - Filters: pure functions narrowing a dataset by country and date, plus
//     the option lists the dashboard offers.
//   - ExclusionStore: the append-only, url-deduplicated record of rows the
//     reviewer marked not relevant.
//   - Service: binds a data path, a cache and a store for the web layer.
//
// # Loading
//
//	loader := core.NewLoader(core.DefaultSchema())
//	ds, err := loader.Load(ctx, "data.csv")
//	switch {
//	case errors.Is(err, core.ErrMissingDataSource):
//	    // ds is empty but carries the full column list
//	case err != nil:
//	    // schema mismatch or unreadable file
//	}
//
// Malformed dates and scores never fail a load. They degrade to missing
// values and the row is kept.
//
// # Filtering
//
//	view := core.ApplyFilters(ds, core.NewSet("US", "FR"), nil)
//
// An empty set disables its filter. Filters compose with AND.
//
// # Error Handling
//
// Errors wrap their cause with fmt.Errorf and %w. [MapError] turns any error
// into a [UserMessage] with a support code; see errors.go for the table.
package core
