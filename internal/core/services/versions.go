package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pault.ag/go/debian/version"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

// compareVersions orders Debian version strings. Unparseable versions
// fall back to plain string comparison.
func compareVersions(a, b string) int {
	va, errA := version.Parse(a)
	vb, errB := version.Parse(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return version.Compare(va, vb)
}

// sortVersions sorts versions in ascending Debian order.
func sortVersions(versions []domain.VersionInfo) {
	sort.SliceStable(versions, func(i, j int) bool {
		return compareVersions(versions[i].Version, versions[j].Version) < 0
	})
}

// resolveSuite normalises a suite parameter and expands aliases.
func resolveSuite(ctx context.Context, store driven.PackageStore, suite string) (string, error) {
	suite = domain.NormaliseSuite(suite)
	if suite == "" {
		return "", nil
	}
	alias, err := store.ResolveSuiteAlias(ctx, suite)
	switch {
	case err == nil:
		return alias, nil
	case errors.Is(err, domain.ErrNotFound):
		return suite, nil
	default:
		return "", fmt.Errorf("resolving suite %s: %w", suite, err)
	}
}

// listVersions returns the versions of pkg in ascending order, restricted
// to suite when it is not empty.
func listVersions(ctx context.Context, store driven.PackageStore, pkg, suite string) ([]domain.VersionInfo, error) {
	suite, err := resolveSuite(ctx, store, suite)
	if err != nil {
		return nil, err
	}

	all, err := store.ListVersions(ctx, pkg)
	if err != nil {
		return nil, err
	}

	versions := make([]domain.VersionInfo, 0, len(all))
	for _, v := range all {
		if suite == "" || v.InSuite(suite) {
			versions = append(versions, v)
		}
	}
	sortVersions(versions)
	return versions, nil
}
