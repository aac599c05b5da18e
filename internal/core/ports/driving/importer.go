package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

// ImportService populates the metadata database.
type ImportService interface {
	// ImportSources registers every entry of a Sources index as published
	// in suite and area.
	ImportSources(ctx context.Context, index driven.SourceIndex, suite, area string) (*domain.ImportStats, error)

	// ScanMirror registers versions present on the mirror but unknown to
	// the database.
	ScanMirror(ctx context.Context) (*domain.ImportStats, error)

	// ComputeChecksums records the sha256 of every regular file of a
	// version. Versions that already have checksums are skipped unless
	// force is set.
	ComputeChecksums(ctx context.Context, pkg, version string, force bool) (int, error)
}
