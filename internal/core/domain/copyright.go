package domain

// LicenseRef is one license named by a synopsis, with where its text
// can be read: a reference URL, a "#license-N" anchor, or "".
type LicenseRef struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// CopyrightGlob is one Files pattern. Path points at the directory the
// pattern covers, as package/version/dir, and is empty for hidden
// patterns.
type CopyrightGlob struct {
	Pattern string `json:"files"`
	Path    string `json:"path,omitempty"`
}

// CopyrightFiles is a Files paragraph of debian/copyright.
type CopyrightFiles struct {
	Globs     []CopyrightGlob `json:"globs"`
	Copyright string          `json:"copyright"`
	Comment   string          `json:"comment,omitempty"`
	Synopsis  string          `json:"license"`
	Licenses  []LicenseRef    `json:"licenses"`
	Text      string          `json:"text,omitempty"`
}

// CopyrightLicense is a standalone License paragraph.
type CopyrightLicense struct {
	Synopsis string `json:"synopsis"`
	Link     string `json:"link"`
	Text     string `json:"text"`
	Comment  string `json:"comment,omitempty"`
}

// CopyrightView is the license view of a package version.
type CopyrightView struct {
	Package string `json:"package"`
	Version string `json:"version"`
	// URL is the raw debian/copyright under the static prefix.
	URL             string             `json:"url"`
	MachineReadable bool               `json:"machine_readable"`
	Format          string             `json:"format,omitempty"`
	UpstreamName    string             `json:"upstream_name,omitempty"`
	Source          string             `json:"source,omitempty"`
	Files           []CopyrightFiles   `json:"files"`
	Licenses        []CopyrightLicense `json:"licenses"`
}

// FileLicense is the license governing one file. License is nil when the
// copyright file is not machine-readable or no paragraph covers the file.
type FileLicense struct {
	Package string  `json:"package"`
	Version string  `json:"version"`
	Path    string  `json:"path"`
	License *string `json:"license"`
}
