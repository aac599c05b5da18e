package domain

// MissingPatchSummary is reported for series entries without a patch file.
const MissingPatchSummary = "Patch does not exist"

// NoDescription is reported when a patch carries no DEP-3 description.
const NoDescription = "---"

// FileDelta is one diffstat row.
type FileDelta struct {
	FilePath string `json:"filepath"`
	Deltas   string `json:"deltas"`
}

// PatchInfo describes one entry of a quilt series.
type PatchInfo struct {
	Name string `json:"name"`
	// Options holds anything after the patch name on its series line.
	Options     string      `json:"options,omitempty"`
	Deltas      []FileDelta `json:"deltas"`
	Summary     string      `json:"summary"`
	Download    string      `json:"download"`
	Description string      `json:"description"`
	Bug         string      `json:"bug"`
	// Path is package/version/debian/patches/<name>.
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// PatchSummary describes the patch series of a package version.
type PatchSummary struct {
	Package    string      `json:"package"`
	Version    string      `json:"version"`
	Format     string      `json:"format"`
	Supported  bool        `json:"supported"`
	SeriesPath string      `json:"series_path_to"`
	Patches    []PatchInfo `json:"patches"`
}

// Names returns the patch names in series order.
func (s PatchSummary) Names() []string {
	names := make([]string, len(s.Patches))
	for i := range s.Patches {
		names[i] = s.Patches[i].Name
	}
	return names
}

// PatchDetail describes a single patch.
type PatchDetail struct {
	Package     string `json:"package"`
	Version     string `json:"version"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Bug         string `json:"bug"`
	FileDeltas  string `json:"file_deltas"`
	Path        string `json:"path"`
}

// PatchVersion is a version listing entry annotated with patch data.
type PatchVersion struct {
	VersionInfo
	Supported bool `json:"supported"`
	Series    int  `json:"series"`
}

// PatchVersions lists the versions of a package with their series sizes.
type PatchVersions struct {
	Package  string         `json:"package"`
	Versions []PatchVersion `json:"versions"`
	// IsEmpty is set when a supported version carries no patches.
	IsEmpty bool `json:"is_empty"`
}
