// Package patches reads the debian/patches quilt series of unpacked
// source packages: series files, DEP-3 headers and diffstat summaries.
package patches

import "strings"

// Well-known paths relative to a version root.
const (
	SeriesPath = "debian/patches/series"
	FormatPath = "debian/source/format"
	PatchesDir = "debian/patches"
)

// AcceptedFormats are the source formats whose patch series can be shown.
var AcceptedFormats = []string{"3.0 (quilt)", "3.0 (native)"}

// UnknownFormat is reported when debian/source/format is missing.
const UnknownFormat = "unknown"

// IsSupported reports whether format is one of AcceptedFormats.
func IsSupported(format string) bool {
	format = strings.TrimSpace(format)
	for _, f := range AcceptedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// PatchPath returns the version-relative path of a patch.
func PatchPath(name string) string {
	return PatchesDir + "/" + name
}
