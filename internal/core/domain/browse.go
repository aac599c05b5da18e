package domain

// BrowseKind tells what a browsed location resolved to.
type BrowseKind string

// Browse result kinds.
const (
	BrowseDirectory BrowseKind = "directory"
	BrowseFile      BrowseKind = "file"
	BrowseRedirect  BrowseKind = "redirect"
)

// FileStat is the lstat(2) view of a mirror entry.
type FileStat struct {
	// Type is the ls(1) type character: "-", "d", "l", "c", "b", "p" or "s".
	Type        string  `json:"type"`
	Perms       string  `json:"perms"`
	Size        int64   `json:"size"`
	SymlinkDest *string `json:"symlink_dest"`
}

// DirEntry is one row of a directory listing.
type DirEntry struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Hidden bool     `json:"hidden"`
	Stat   FileStat `json:"stat"`
}

// IsDir reports whether the entry is listed as a directory.
func (e DirEntry) IsDir() bool {
	return e.Type == string(BrowseDirectory)
}

// MIME is a detected media type and its character encoding.
type MIME struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
}

// DirectoryInfo describes a browsed directory.
type DirectoryInfo struct {
	Name    string     `json:"directory"`
	Content []DirEntry `json:"content"`
}

// FileInfo describes a browsed file.
type FileInfo struct {
	Name               string   `json:"file"`
	MIME               MIME     `json:"mime"`
	RawURL             string   `json:"raw_url"`
	TextFile           bool     `json:"text_file"`
	Stat               FileStat `json:"stat"`
	Checksum           string   `json:"checksum,omitempty"`
	NumberOfDuplicates int      `json:"number_of_duplicates"`
}

// PackageInfo is the summary box shown next to browsed content.
type PackageInfo struct {
	Package    string   `json:"package"`
	Version    string   `json:"version"`
	Area       string   `json:"area"`
	Suites     []string `json:"suites"`
	VcsType    string   `json:"vcs_type,omitempty"`
	VcsBrowser string   `json:"vcs_browser,omitempty"`
	PTSLink    string   `json:"pts_link"`
}

// BrowseResult is what a package/version/path resolves to.
type BrowseResult struct {
	Kind    BrowseKind `json:"type"`
	Package string     `json:"package"`
	Version string     `json:"version"`
	// Path is the location relative to the mirror root: package/version/path.
	Path      string         `json:"path"`
	Directory *DirectoryInfo `json:"directory,omitempty"`
	File      *FileInfo      `json:"file,omitempty"`
	// RedirectTo is set for symlinks pointing inside the version tree.
	RedirectTo string       `json:"redirect_to,omitempty"`
	Info       *PackageInfo `json:"pkg_infos,omitempty"`
}

// CodeLine is one numbered line of a source file.
type CodeLine struct {
	Number      int    `json:"number"`
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// CodeMessage is an annotation attached to a line.
type CodeMessage struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// CodeOptions tweak how a source file is presented.
type CodeOptions struct {
	// Highlight is a comma separated list of lines or a:b ranges.
	Highlight string
	// Messages are "position:title:message" annotations.
	Messages []string
	// Lang forces the highlighting language.
	Lang string
}

// CodeView is a text file prepared for display.
type CodeView struct {
	Package       string        `json:"package"`
	Version       string        `json:"version"`
	Path          string        `json:"path"`
	Language      string        `json:"file_language"`
	NumberOfLines int           `json:"nlines"`
	Lines         []CodeLine    `json:"lines"`
	Messages      []CodeMessage `json:"msgs"`
	RawURL        string        `json:"raw_url"`
	Checksum      string        `json:"checksum,omitempty"`
}
