package driven

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// PackageStore persists package names, published versions and suite
// membership.
//
// Suite arguments are already normalised: an empty suite means no filter.
type PackageStore interface {
	// ListNames returns all package names, sorted, optionally restricted to a suite.
	ListNames(ctx context.Context, suite string) ([]domain.PackageName, error)

	// ListNamesByPrefix returns the names living under a pool prefix
	// (see domain.PackagePrefix). Matching is case-insensitive.
	ListNamesByPrefix(ctx context.Context, prefix, suite string) ([]domain.PackageName, error)

	// SearchNames returns names containing query, case-insensitively.
	SearchNames(ctx context.Context, query, suite string) ([]domain.PackageName, error)

	// GetName retrieves a package name. Returns domain.ErrNotFound if unknown.
	GetName(ctx context.Context, name string) (*domain.PackageName, error)

	// ListVersions returns every version of a package with its area and suites.
	// Order is unspecified. Returns domain.ErrNotFound if the package is unknown.
	ListVersions(ctx context.Context, name string) ([]domain.VersionInfo, error)

	// GetPackage retrieves one published version.
	// Returns domain.ErrNotFound if the pair is unknown.
	GetPackage(ctx context.Context, name, version string) (*domain.Package, error)

	// SavePackage creates or updates a version, creating its name if needed.
	// The ID and NameID fields of pkg are filled in.
	SavePackage(ctx context.Context, pkg *domain.Package) error

	// AddSuite records that a version is published in a suite.
	AddSuite(ctx context.Context, packageID int64, suite string) error

	// ResolveSuiteAlias maps an alias such as "unstable" to its suite.
	// Returns domain.ErrNotFound if the alias is unknown.
	ResolveSuiteAlias(ctx context.Context, alias string) (string, error)

	// SaveSuiteAlias records an alias for a suite.
	SaveSuiteAlias(ctx context.Context, alias, suite string) error

	// ListSuites returns every suite that has at least one version.
	ListSuites(ctx context.Context) ([]string, error)
}

// ChecksumStore persists per-file sha256 checksums.
type ChecksumStore interface {
	// SaveChecksums replaces the checksums recorded for a version.
	SaveChecksums(ctx context.Context, packageID int64, sums []domain.FileChecksum) error

	// HasChecksums reports whether checksums were recorded for a version.
	HasChecksums(ctx context.Context, packageID int64) (bool, error)

	// Checksum returns the sha256 of path inside package/version.
	// Returns domain.ErrNotFound if nothing is recorded.
	Checksum(ctx context.Context, name, version, path string) (string, error)

	// CountChecksum returns how many files carry sha256.
	CountChecksum(ctx context.Context, sha256 string) (int, error)

	// FilesByChecksum lists the files carrying sha256, optionally restricted
	// to one package.
	FilesByChecksum(ctx context.Context, sha256, pkg string) ([]domain.ChecksumMatch, error)
}
