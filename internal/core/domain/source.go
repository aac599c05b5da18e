package domain

// SourceEntry is one paragraph of a Debian Sources index.
type SourceEntry struct {
	Package   string
	Version   string
	Directory string
	Format    string
	// VcsType is the suffix of the Vcs-* field naming the repository, e.g. "git".
	VcsType    string
	VcsBrowser string
}

// ImportStats summarises an import run.
type ImportStats struct {
	Packages  int `json:"packages"`
	Versions  int `json:"versions"`
	Suites    int `json:"suites"`
	Checksums int `json:"checksums"`
	Skipped   int `json:"skipped"`
}
