package memory

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

// ChecksumStore also serves the stats, since file sizes live with the
// checksums.
var _ driven.StatsStore = (*ChecksumStore)(nil)

// CountByArea groups versions, files and file sizes by area.
func (s *ChecksumStore) CountByArea(_ context.Context, suite string) (map[string]domain.StatsCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.packages.mu.RLock()
	defer s.packages.mu.RUnlock()

	counts := make(map[string]domain.StatsCounts)
	for id, pkg := range s.packages.packages {
		if suite != "" {
			if _, ok := s.packages.suites[id][suite]; !ok {
				continue
			}
		}
		c := counts[pkg.Area]
		c.SourcePackages++
		for _, sum := range s.sums[id] {
			c.SourceFiles++
			c.DiskUsage += sum.Size
		}
		counts[pkg.Area] = c
	}
	return counts, nil
}
