// Package domain defines the core entities of the source browser.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PackageName, Package, VersionInfo: archive metadata rows
//   - BrowseResult, DirEntry, FileInfo: what a mirror location resolves to
//   - PatchSummary, PatchInfo, PatchDetail: quilt series data
//   - CopyrightView, FileLicense: debian/copyright data
//   - SuiteStats, ArchiveStats: archive size figures
//   - Settings: runtime configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
