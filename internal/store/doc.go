// Package store persists keyed record collections in SQLite.
//
// Each collection is a named JSON document holding a list of records
// (members, instruments, amplifiers, ...). Reads return the stored list or
// report that the collection is absent so callers can fall back to their own
// default; writes replace the whole list. Mutate wraps a read-modify-write in
// both a SQL transaction and an exclusive file lock so two processes editing
// the same data directory cannot interleave.
//
// The schema is versioned in schema.go; bump schemaVersion when the table
// layout changes.
package store
