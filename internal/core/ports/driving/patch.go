package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// PatchService inspects the debian/patches series of package versions.
type PatchService interface {
	// ListVersions returns a package's versions, newest first, annotated
	// with patch series support and size.
	ListVersions(ctx context.Context, pkg, suite string) (*domain.PatchVersions, error)

	// Summary describes the patch series of one version.
	Summary(ctx context.Context, pkg, version string) (*domain.PatchSummary, error)

	// Patch describes a single patch of a version.
	Patch(ctx context.Context, pkg, version, name string) (*domain.PatchDetail, error)
}
