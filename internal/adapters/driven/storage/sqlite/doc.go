// Package sqlite provides the SQLite implementation of the package and
// checksum stores.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation that needs no
// CGO. Both stores share a single database connection:
//
//   - PackageStore: package names, versions, suites and suite aliases
//   - ChecksumStore: per-file sha256 checksums
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each applied version is recorded in
// schema_migrations so reopening a database only runs newer files.
//
// # Data Location
//
// By default, the database is stored at ~/.debsources/data/metadata.db
package sqlite
