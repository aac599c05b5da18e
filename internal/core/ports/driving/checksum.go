package driving

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// ChecksumService finds files by content.
type ChecksumService interface {
	// Search returns the files whose sha256 is checksum, optionally
	// restricted to one package.
	Search(ctx context.Context, checksum, pkg string) ([]domain.ChecksumMatch, error)
}
