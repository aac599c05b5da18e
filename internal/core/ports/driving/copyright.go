package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// CopyrightService reads the debian/copyright files of package versions.
type CopyrightService interface {
	// License returns the parsed debian/copyright of a version.
	License(ctx context.Context, pkg, version string) (*domain.CopyrightView, error)

	// FileLicenses returns the license governing path in a version, or in
	// every version holding it when version is "all".
	FileLicenses(ctx context.Context, pkg, version, path string) ([]domain.FileLicense, error)

	// ChecksumLicenses returns the license of every file whose sha256 is
	// checksum, optionally restricted to one package and to a suite.
	// The suite "latest" keeps only the newest version of each package.
	ChecksumLicenses(ctx context.Context, checksum, pkg, suite string) ([]domain.FileLicense, error)
}
