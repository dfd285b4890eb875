// Package greenhouse implements a single-user record keeper for produce
// deliveries, partner settlements and partner records.
//
// The Registry owns the three in-memory collections and persists every
// mutation through a Store. Query functions produce filtered and sorted
// projections over collection snapshots without mutating them, and
// BuildReport flattens those projections into rows for the report
// exporter.
package greenhouse
