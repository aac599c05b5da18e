package driven

import "github.com/custodia-labs/debsources/internal/core/domain"

// AreaFinder locates package versions on the mirror without the database.
type AreaFinder interface {
	// FindArea returns the archive area holding package/version, probing
	// domain.Areas in order.
	FindArea(pkg, version string) (string, bool)
}

// SourceIndex iterates over the paragraphs of a Debian Sources index.
type SourceIndex interface {
	// Next returns the next entry, or io.EOF after the last one.
	Next() (*domain.SourceEntry, error)
}
