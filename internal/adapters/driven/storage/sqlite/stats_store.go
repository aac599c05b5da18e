package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

// ==================== Stats Store ====================

// statsStore implements driven.StatsStore.
type statsStore struct {
	store *Store
}

var _ driven.StatsStore = (*statsStore)(nil)

// CountByArea groups versions, files and file sizes by area.
func (s *statsStore) CountByArea(ctx context.Context, suite string) (map[string]domain.StatsCounts, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT p.area, COUNT(DISTINCT p.id), COUNT(f.id), COALESCE(SUM(f.size), 0)
		FROM packages p
		LEFT JOIN files f ON f.package_id = p.id
		WHERE (? = '' OR EXISTS (
			SELECT 1 FROM suites s WHERE s.package_id = p.id AND s.suite = ?))
		GROUP BY p.area
	`, suite, suite)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]domain.StatsCounts)
	for rows.Next() {
		var (
			area string
			c    domain.StatsCounts
		)
		if err := rows.Scan(&area, &c.SourcePackages, &c.SourceFiles, &c.DiskUsage); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		counts[area] = c
	}
	return counts, rows.Err()
}
