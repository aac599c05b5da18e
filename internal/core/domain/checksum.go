package domain

// ChecksumMatch is a file carrying a given sha256.
type ChecksumMatch struct {
	Package string `json:"package"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// FileChecksum is the sha256 and size of one file relative to its
// version root.
type FileChecksum struct {
	Path   string `json:"path"`
	Sha256 string `json:"sha256"`
	Size   int64  `json:"size"`
}
