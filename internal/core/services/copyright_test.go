package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

const machineCopyright = `Format: http://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
Upstream-Name: GNU Backgammon

Files: *
Copyright: 1997-2014 Gary Wong
License: GPL-3+

Files: src/*
Copyright: 2003 Joern Thyssen
License: FSF-configure or GPL-2+

Files: .travis.yml
Copyright: 2014 Somebody
License: MIT

License: FSF-configure
 Unlimited permission to copy, distribute and modify.
`

const sharedContent = "shared\n"

// withCopyright adds debian/copyright files and a COPYING file present
// in both gnubg versions on disk.
func withCopyright(t *testing.T, env *testEnv) {
	t.Helper()
	old := filepath.Join(env.root, "main", "g", "gnubg", "1.02.000-2")
	cur := filepath.Join(env.root, "main", "g", "gnubg", "1.06.002-1")
	writeFile(t, filepath.Join(old, "debian", "copyright"), machineCopyright)
	writeFile(t, filepath.Join(cur, "debian", "copyright"), "This package was debianized by someone.\nIt is GPL.\n")
	writeFile(t, filepath.Join(old, "COPYING"), sharedContent)
	writeFile(t, filepath.Join(cur, "COPYING"), sharedContent)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (e *testEnv) copyrightService() *CopyrightService {
	return NewCopyrightService(e.packages, e.checksums, e.locator)
}

func TestCopyrightService_License(t *testing.T) {
	env := setupEnv(t)
	withCopyright(t, env)

	view, err := env.copyrightService().License(context.Background(), "gnubg", "1.02.000-2")
	require.NoError(t, err)

	assert.True(t, view.MachineReadable)
	assert.Equal(t, "/data/main/g/gnubg/1.02.000-2/debian/copyright", view.URL)
	assert.Equal(t, "GNU Backgammon", view.UpstreamName)
	require.Len(t, view.Files, 3)

	all := view.Files[0]
	assert.Equal(t, []domain.CopyrightGlob{{Pattern: "*", Path: "gnubg/1.02.000-2"}}, all.Globs)
	assert.Equal(t, "GPL-3+", all.Synopsis)
	assert.Equal(t, []domain.LicenseRef{{Name: "GPL-3+", Link: "http://opensource.org/licenses/GPL-3.0"}}, all.Licenses)

	src := view.Files[1]
	assert.Equal(t, "gnubg/1.02.000-2/src", src.Globs[0].Path)
	assert.Equal(t, []domain.LicenseRef{
		{Name: "FSF-configure", Link: "#license-0"},
		{Name: "GPL-2+", Link: "http://opensource.org/licenses/GPL-2.0"},
	}, src.Licenses)

	assert.Empty(t, view.Files[2].Globs[0].Path)

	require.Len(t, view.Licenses, 1)
	assert.Equal(t, "FSF-configure", view.Licenses[0].Synopsis)
	assert.Equal(t, "Unlimited permission to copy, distribute and modify.", view.Licenses[0].Text)
}

func TestCopyrightService_License_NotMachineReadable(t *testing.T) {
	env := setupEnv(t)
	withCopyright(t, env)

	view, err := env.copyrightService().License(context.Background(), "gnubg", "1.06.002-1")
	require.NoError(t, err)

	assert.False(t, view.MachineReadable)
	assert.Empty(t, view.Files)
	assert.NotNil(t, view.Files)
	assert.Equal(t, "/data/main/g/gnubg/1.06.002-1/debian/copyright", view.URL)
}

func TestCopyrightService_License_Missing(t *testing.T) {
	env := setupEnv(t)
	service := env.copyrightService()
	ctx := context.Background()

	_, err := service.License(ctx, "gnubg", "1.02.000-2")
	assert.ErrorIs(t, err, domain.ErrFileOrFolderNotFound)

	_, err = service.License(ctx, "gnubg", "9.9-9")
	assert.True(t, domain.IsNotFound(err))

	_, err = NewCopyrightService(nil, nil, nil).License(ctx, "gnubg", "1.02.000-2")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestCopyrightService_FileLicenses(t *testing.T) {
	env := setupEnv(t)
	withCopyright(t, env)
	service := env.copyrightService()
	ctx := context.Background()

	results, err := service.FileLicenses(ctx, "gnubg", "1.02.000-2", "src/main.c/")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "src/main.c", results[0].Path)
	require.NotNil(t, results[0].License)
	assert.Equal(t, "FSF-configure or GPL-2+", *results[0].License)

	results, err = service.FileLicenses(ctx, "gnubg", "1.02.000-2", "README")
	require.NoError(t, err)
	assert.Equal(t, "GPL-3+", *results[0].License)

	t.Run("all versions", func(t *testing.T) {
		results, err := service.FileLicenses(ctx, "gnubg", "all", "README")
		require.NoError(t, err)

		// 0.9-1 is not on disk and is left out.
		require.Len(t, results, 2)
		assert.Equal(t, "1.02.000-2", results[0].Version)
		assert.Equal(t, "GPL-3+", *results[0].License)
		assert.Equal(t, "1.06.002-1", results[1].Version)
		assert.Nil(t, results[1].License)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := service.FileLicenses(ctx, "gnubg", "1.02.000-2", "nope.c")
		assert.ErrorIs(t, err, domain.ErrFileOrFolderNotFound)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := service.FileLicenses(ctx, "gnubg", "1.02.000-2", "/")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCopyrightService_ChecksumLicenses(t *testing.T) {
	env := setupEnv(t)
	withCopyright(t, env)
	ctx := context.Background()

	importer := NewImportService(env.packages, env.checksums, env.locator)
	for _, v := range []string{"1.02.000-2", "1.06.002-1"} {
		_, err := importer.ComputeChecksums(ctx, "gnubg", v, true)
		require.NoError(t, err)
	}
	service := env.copyrightService()
	sum := sha256Hex(sharedContent)

	results, err := service.ChecksumLicenses(ctx, sum, "", "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1.02.000-2", results[0].Version)
	assert.Equal(t, "COPYING", results[0].Path)
	require.NotNil(t, results[0].License)
	assert.Equal(t, "GPL-3+", *results[0].License)
	assert.Nil(t, results[1].License)

	tests := []struct {
		name     string
		pkg      string
		suite    string
		versions []string
	}{
		{"suite", "", "jessie", []string{"1.02.000-2"}},
		{"alias", "", "unstable", []string{"1.06.002-1"}},
		{"latest", "", "latest", []string{"1.06.002-1"}},
		{"all", "", "all", []string{"1.02.000-2", "1.06.002-1"}},
		{"other package", "ledit", "", nil},
		{"unknown suite", "", "potato", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := service.ChecksumLicenses(ctx, sum, tt.pkg, tt.suite)
			require.NoError(t, err)
			assert.NotNil(t, results)

			var versions []string
			for _, r := range results {
				versions = append(versions, r.Version)
			}
			assert.Equal(t, tt.versions, versions)
		})
	}

	_, err = service.ChecksumLicenses(ctx, "abc", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewCopyrightService(env.packages, nil, env.locator).ChecksumLicenses(ctx, sum, "", "")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
