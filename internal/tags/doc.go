// Package tags persists user-edited clip metadata in SQLite.
//
// The Store holds exactly one Tag per file name and exposes CRUD operations,
// an artist-to-albums query, and a merge-based backup import. Mutations are
// serialized through an in-process mutex and a cross-process file lock;
// reads run against the live database without locking.
//
// Treat this package as the single source of truth for tag semantics; when
// you add fields, update schema.sql and bump schemaVersion.
package tags
