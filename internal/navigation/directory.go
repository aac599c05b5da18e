package navigation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// Directory lists a directory location.
type Directory struct {
	location *Location
	hidden   []glob.Glob
}

// NewDirectory creates a directory listing for loc. Entries whose full
// path (with a trailing slash for directories) matches one of the
// fnmatch-style hiddenFiles patterns are flagged hidden.
func NewDirectory(loc *Location, hiddenFiles []string) (*Directory, error) {
	d := &Directory{location: loc}
	for _, pattern := range hiddenFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: hidden files pattern %q: %v", domain.ErrInvalidInput, pattern, err)
		}
		d.hidden = append(d.hidden, g)
	}
	return d, nil
}

// Listing returns the entries sorted by name.
func (d *Directory) Listing() ([]domain.DirEntry, error) {
	entries, err := os.ReadDir(d.location.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.location.CleanPathTo(), err)
	}

	listing := make([]domain.DirEntry, 0, len(entries))
	for _, e := range entries {
		full := filepath.Join(d.location.SourcesPath, e.Name())

		entry := domain.DirEntry{Name: e.Name(), Type: "file"}
		if fi, err := os.Stat(full); err == nil && fi.IsDir() {
			entry.Type = "directory"
		}

		st, err := Stat(full)
		if err != nil {
			return nil, err
		}
		entry.Stat = st

		match := full
		if entry.IsDir() {
			match += "/"
		}
		entry.Hidden = d.isHidden(match)

		listing = append(listing, entry)
	}

	sort.Slice(listing, func(i, j int) bool {
		return listing[i].Name < listing[j].Name
	})
	return listing, nil
}

func (d *Directory) isHidden(path string) bool {
	for _, g := range d.hidden {
		if g.Match(path) {
			return true
		}
	}
	return false
}
