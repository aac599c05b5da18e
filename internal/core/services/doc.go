// Package services implements the driving port interfaces.
//
// SourceService browses the mirror, PatchService reads quilt series,
// ChecksumService finds files by content and ImportService fills the
// metadata database. They only talk to driven ports and the navigation
// and patches packages, never to adapters directly.
package services
