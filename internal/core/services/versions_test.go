package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/debsources/internal/core/domain"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0-1", "1.0-2", -1},
		{"1.10-1", "1.9-1", 1},
		{"1:0.1-1", "2.0-1", 1},
		{"1.0~rc1-1", "1.0-1", -1},
		{"2.0", "2.0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got := compareVersions(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestSortVersions(t *testing.T) {
	versions := []domain.VersionInfo{
		{Version: "1.10-1"}, {Version: "1:0.5-1"}, {Version: "1.9-1"}, {Version: "1.9~beta-1"},
	}
	sortVersions(versions)

	var got []string
	for _, v := range versions {
		got = append(got, v.Version)
	}
	assert.Equal(t, []string{"1.9~beta-1", "1.9-1", "1.10-1", "1:0.5-1"}, got)
}

func TestResolveSuite(t *testing.T) {
	store := memory.NewPackageStore()
	ctx := context.Background()

	suite, err := resolveSuite(ctx, store, " Unstable ")
	require.NoError(t, err)
	assert.Equal(t, "sid", suite)

	suite, err = resolveSuite(ctx, store, "ALL")
	require.NoError(t, err)
	assert.Empty(t, suite)

	suite, err = resolveSuite(ctx, store, "jessie")
	require.NoError(t, err)
	assert.Equal(t, "jessie", suite)
}
