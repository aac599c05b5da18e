package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
)

var _ driving.StatsService = (*StatsService)(nil)

// StatsService reports archive size figures.
type StatsService struct {
	packages driven.PackageStore
	stats    driven.StatsStore
}

// NewStatsService creates a stats service.
func NewStatsService(packages driven.PackageStore, stats driven.StatsStore) *StatsService {
	return &StatsService{packages: packages, stats: stats}
}

// count sums the per-area figures of suite ("" for the whole archive).
func (s *StatsService) count(ctx context.Context, suite string) (*domain.SuiteStats, error) {
	areas, err := s.stats.CountByArea(ctx, suite)
	if err != nil {
		return nil, err
	}
	out := &domain.SuiteStats{Suite: suite, Areas: areas}
	for _, c := range areas {
		out.Total.Add(c)
	}
	return out, nil
}

// Suite returns the figures of one suite. Aliases are expanded; suites
// without any version are not found.
func (s *StatsService) Suite(ctx context.Context, suite string) (*domain.SuiteStats, error) {
	if s.packages == nil || s.stats == nil {
		return nil, domain.ErrNotImplemented
	}
	resolved, err := resolveSuite(ctx, s.packages, suite)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return nil, fmt.Errorf("%w: no suite given", domain.ErrInvalidInput)
	}
	suites, err := s.packages.ListSuites(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(suites, resolved) {
		return nil, fmt.Errorf("%w: suite %s", domain.ErrNotFound, resolved)
	}
	return s.count(ctx, resolved)
}

// Archive returns the figures of every suite and of the whole archive.
func (s *StatsService) Archive(ctx context.Context) (*domain.ArchiveStats, error) {
	if s.packages == nil || s.stats == nil {
		return nil, domain.ErrNotImplemented
	}
	suites, err := s.packages.ListSuites(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.count(ctx, "")
	if err != nil {
		return nil, err
	}
	out := &domain.ArchiveStats{
		Suites:   suites,
		Total:    *total,
		PerSuite: make([]domain.SuiteStats, 0, len(suites)),
	}
	if out.Suites == nil {
		out.Suites = []string{}
	}
	for _, suite := range suites {
		st, err := s.count(ctx, suite)
		if err != nil {
			return nil, err
		}
		out.PerSuite = append(out.PerSuite, *st)
	}
	return out, nil
}
