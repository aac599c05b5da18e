package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

var _ driven.ChecksumStore = (*ChecksumStore)(nil)

// ChecksumStore is an in-memory implementation of driven.ChecksumStore.
// It resolves package IDs through the PackageStore it was created with.
type ChecksumStore struct {
	mu       sync.RWMutex
	packages *PackageStore
	sums     map[int64][]domain.FileChecksum
}

// NewChecksumStore creates a checksum store bound to packages.
func NewChecksumStore(packages *PackageStore) *ChecksumStore {
	return &ChecksumStore{
		packages: packages,
		sums:     make(map[int64][]domain.FileChecksum),
	}
}

// SaveChecksums replaces the checksums recorded for a version.
func (s *ChecksumStore) SaveChecksums(_ context.Context, packageID int64, sums []domain.FileChecksum) error {
	s.packages.mu.RLock()
	_, ok := s.packages.lookup(packageID)
	s.packages.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sums[packageID] = append([]domain.FileChecksum(nil), sums...)
	return nil
}

// HasChecksums reports whether checksums were recorded for a version.
func (s *ChecksumStore) HasChecksums(_ context.Context, packageID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sums[packageID]) > 0, nil
}

// Checksum returns the sha256 of a file.
func (s *ChecksumStore) Checksum(ctx context.Context, name, version, path string) (string, error) {
	pkg, err := s.packages.GetPackage(ctx, name, version)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sum := range s.sums[pkg.ID] {
		if sum.Path == path {
			return sum.Sha256, nil
		}
	}
	return "", domain.ErrNotFound
}

// CountChecksum returns how many files carry sha256.
func (s *ChecksumStore) CountChecksum(_ context.Context, sha256 string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sums := range s.sums {
		for _, sum := range sums {
			if sum.Sha256 == sha256 {
				n++
			}
		}
	}
	return n, nil
}

// FilesByChecksum lists the files carrying sha256.
func (s *ChecksumStore) FilesByChecksum(_ context.Context, sha256, pkg string) ([]domain.ChecksumMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.packages.mu.RLock()
	defer s.packages.mu.RUnlock()

	var matches []domain.ChecksumMatch
	for id, sums := range s.sums {
		p, ok := s.packages.lookup(id)
		if !ok || (pkg != "" && p.Name != pkg) {
			continue
		}
		for _, sum := range sums {
			if sum.Sha256 == sha256 {
				matches = append(matches, domain.ChecksumMatch{Package: p.Name, Version: p.Version, Path: sum.Path})
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Package != b.Package {
			return a.Package < b.Package
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.Path < b.Path
	})
	return matches, nil
}
