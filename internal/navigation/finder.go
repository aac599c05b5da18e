package navigation

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

var _ driven.AreaFinder = (*DiskAreaFinder)(nil)

// DiskAreaFinder searches every area of the mirror for a version.
type DiskAreaFinder struct {
	sourcesDir string
}

// NewDiskAreaFinder creates a finder rooted at sourcesDir.
func NewDiskAreaFinder(sourcesDir string) *DiskAreaFinder {
	return &DiskAreaFinder{sourcesDir: sourcesDir}
}

// FindArea returns the first area in domain.Areas holding pkg/version.
func (f *DiskAreaFinder) FindArea(pkg, version string) (string, bool) {
	prefix := domain.PackagePrefix(pkg)
	for _, area := range domain.Areas {
		if _, err := os.Stat(filepath.Join(f.sourcesDir, area, prefix, pkg, version)); err == nil {
			return area, true
		}
	}
	return "", false
}
