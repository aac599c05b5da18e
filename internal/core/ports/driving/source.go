package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// SourceService browses packages and their unpacked sources.
type SourceService interface {
	// ListPackages returns all package names, optionally restricted to a suite.
	ListPackages(ctx context.Context, suite string) ([]domain.PackageName, error)

	// PackagesByPrefix returns the packages under a pool prefix ("g", "libc").
	PackagesByPrefix(ctx context.Context, prefix, suite string) ([]domain.PackageName, error)

	// Prefixes returns the distinct pool prefixes of all packages.
	Prefixes(ctx context.Context, suite string) ([]string, error)

	// Search finds packages by name, case-insensitively.
	Search(ctx context.Context, query, suite string) (*domain.SearchResult, error)

	// ListVersions returns a package's versions in ascending order.
	ListVersions(ctx context.Context, pkg, suite string) ([]domain.VersionInfo, error)

	// ResolveVersion expands "latest", suite names and suite aliases to a
	// concrete version. Other values are returned unchanged.
	ResolveVersion(ctx context.Context, pkg, version string) (string, error)

	// Browse resolves a path inside an unpacked package version.
	Browse(ctx context.Context, pkg, version, path string) (*domain.BrowseResult, error)

	// Code prepares a text file for display.
	Code(ctx context.Context, pkg, version, path string, opts domain.CodeOptions) (*domain.CodeView, error)

	// Suggest lists other versions of pkg in which path exists.
	Suggest(ctx context.Context, pkg, version, path string) ([]string, error)

	// Info returns the package summary box of a version.
	Info(ctx context.Context, pkg, version string) (*domain.PackageInfo, error)
}
