// Package store persists partition runs in a local SQLite database.
//
// The schema has three tables: runs (one row per partition), assignments
// (one row per participant, in input order) and boundaries (one row per cut
// line). The driver is modernc.org/sqlite, so no cgo is needed.
//
// A Store serializes access through a single connection; it is safe for
// concurrent use by multiple goroutines.
package store
