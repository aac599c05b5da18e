package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
)

var _ driving.ChecksumService = (*ChecksumService)(nil)

// ChecksumService finds files by content.
type ChecksumService struct {
	checksums driven.ChecksumStore
}

// NewChecksumService creates a checksum service.
func NewChecksumService(checksums driven.ChecksumStore) *ChecksumService {
	return &ChecksumService{checksums: checksums}
}

// Search returns the files whose sha256 is checksum.
func (s *ChecksumService) Search(ctx context.Context, checksum, pkg string) ([]domain.ChecksumMatch, error) {
	if s.checksums == nil {
		return nil, domain.ErrNotImplemented
	}
	checksum, err := normaliseChecksum(checksum)
	if err != nil {
		return nil, err
	}

	matches, err := s.checksums.FilesByChecksum(ctx, checksum, pkg)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []domain.ChecksumMatch{}
	}
	return matches, nil
}

// normaliseChecksum lowercases a sha256 and checks it is 64 hex digits.
func normaliseChecksum(checksum string) (string, error) {
	checksum = strings.ToLower(strings.TrimSpace(checksum))
	if len(checksum) != 64 {
		return "", fmt.Errorf("%w: checksum must be 64 hex digits", domain.ErrInvalidInput)
	}
	if _, err := hex.DecodeString(checksum); err != nil {
		return "", fmt.Errorf("%w: checksum is not hexadecimal", domain.ErrInvalidInput)
	}
	return checksum, nil
}
