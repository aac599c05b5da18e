// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - PackageStore: package names, versions, areas and suites
//   - ChecksumStore: per-file sha256 checksums
//   - AreaFinder: mirror lookups used when the database is stale
//   - SourceIndex: Debian Sources index reader
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
