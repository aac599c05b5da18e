package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

func TestChecksumStore_CountByArea(t *testing.T) {
	packages := NewPackageStore()
	checksums := NewChecksumStore(packages)
	ctx := context.Background()

	gnubg := seed(t, packages, "gnubg", "1.06.002-1", "main", "sid", "bookworm")
	seed(t, packages, "ledit", "2.04-1", "main", "jessie")
	seed(t, packages, "lame", "3.100-6", "non-free", "sid")
	require.NoError(t, checksums.SaveChecksums(ctx, gnubg.ID, []domain.FileChecksum{
		{Path: "README", Sha256: "aa", Size: 100},
		{Path: "COPYING", Sha256: "bb", Size: 35000},
	}))

	all, err := checksums.CountByArea(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.StatsCounts{
		"main":     {SourcePackages: 2, SourceFiles: 2, DiskUsage: 35100},
		"non-free": {SourcePackages: 1},
	}, all)

	sid, err := checksums.CountByArea(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sid["main"].SourcePackages)
	assert.Equal(t, int64(1), sid["non-free"].SourcePackages)

	none, err := checksums.CountByArea(ctx, "potato")
	require.NoError(t, err)
	assert.Empty(t, none)
}
