package driven

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// StatsStore computes archive size figures.
type StatsStore interface {
	// CountByArea returns the figures of every area holding at least one
	// version, optionally restricted to a suite.
	CountByArea(ctx context.Context, suite string) (map[string]domain.StatsCounts, error)
}
