package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// StatsService reports archive size figures.
type StatsService interface {
	// Suite returns the figures of one suite. Unknown suites are not found.
	Suite(ctx context.Context, suite string) (*domain.SuiteStats, error)

	// Archive returns the figures of every suite and of the whole archive.
	Archive(ctx context.Context) (*domain.ArchiveStats, error)
}
