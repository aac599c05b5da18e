package domain

import "strings"

// Areas lists the archive areas in the order they are searched when the
// database does not know where a package version lives.
var Areas = []string{"main", "contrib", "non-free"}

const (
	// SuiteAll disables suite filtering.
	SuiteAll = "all"

	// LatestVersion is the version alias for the newest known version.
	LatestVersion = "latest"
)

// PackageName is a source package name.
type PackageName struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
}

// Package is one published version of a source package.
type Package struct {
	ID         int64  `json:"-"`
	NameID     int64  `json:"-"`
	Name       string `json:"package"`
	Version    string `json:"version"`
	Area       string `json:"area"`
	VcsType    string `json:"vcs_type,omitempty"`
	VcsBrowser string `json:"vcs_browser,omitempty"`
}

// VersionInfo is a single entry of a package version listing.
type VersionInfo struct {
	Version string   `json:"version"`
	Area    string   `json:"area"`
	Suites  []string `json:"suites"`
}

// InSuite reports whether the version is published in suite.
func (v VersionInfo) InSuite(suite string) bool {
	for _, s := range v.Suites {
		if s == suite {
			return true
		}
	}
	return false
}

// PackagePrefix returns the pool directory a package lives under:
// "libX" for lib* packages and the first character otherwise.
func PackagePrefix(name string) string {
	if strings.HasPrefix(name, "lib") && len(name) > 3 {
		return name[:4]
	}
	if name == "" {
		return ""
	}
	return name[:1]
}

// NormaliseSuite lowercases a suite parameter and maps "all" to no filter.
func NormaliseSuite(suite string) string {
	suite = strings.ToLower(strings.TrimSpace(suite))
	if suite == SuiteAll {
		return ""
	}
	return suite
}

// ValidName reports whether s can be used as a path element for a
// package name or version.
func ValidName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\x00")
}
