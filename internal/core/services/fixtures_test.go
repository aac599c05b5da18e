package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/navigation"
)

const fixPatch = `Description: Fix the build
 with a second line
Bug: #123456
Forwarded: no
---
--- a/src/main.c
+++ b/src/main.c
@@ -1 +1,2 @@
-int main(void) { return 0; }
+int main(void) {
+	return 0; }
`

const fixDiffStat = " src/main.c | 3 \t2 +\t1 -\t0 !\n 1 file changed, 2 insertions(+), 1 deletion(-)\n"

// testEnv bundles the stores and mirror used by service tests.
type testEnv struct {
	root      string
	packages  *memory.PackageStore
	checksums *memory.ChecksumStore
	locator   *navigation.Locator
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupEnv builds:
//
//	main/g/gnubg/1.02.000-2   quilt, two series entries (one missing)  [jessie]
//	main/g/gnubg/1.06.002-1   format 1.0                                [sid]
//	gnubg 0.9-1                database only                            [wheezy]
//	contrib/l/ledit/2.04-1    quilt without series, disk only
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	ctx := context.Background()

	old := filepath.Join(root, "main", "g", "gnubg", "1.02.000-2")
	writeFile(t, filepath.Join(old, "README"), "GNU Backgammon\n")
	writeFile(t, filepath.Join(old, "src", "main.c"), "int main(void) { return 0; }\n")
	writeFile(t, filepath.Join(old, "debian", "source", "format"), "3.0 (quilt)\n")
	writeFile(t, filepath.Join(old, "debian", "patches", "series"), "# applied in order\n01-fix.patch\n02-missing.patch -p0\n")
	writeFile(t, filepath.Join(old, "debian", "patches", "01-fix.patch"), fixPatch)
	require.NoError(t, os.MkdirAll(filepath.Join(old, ".pc"), 0o755))
	require.NoError(t, os.Symlink("README", filepath.Join(old, "README.link")))
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(old, "outside")))

	cur := filepath.Join(root, "main", "g", "gnubg", "1.06.002-1")
	writeFile(t, filepath.Join(cur, "README"), "GNU Backgammon 1.06\n")
	writeFile(t, filepath.Join(cur, "debian", "source", "format"), "1.0\n")

	ledit := filepath.Join(root, "contrib", "l", "ledit", "2.04-1")
	writeFile(t, filepath.Join(ledit, "debian", "source", "format"), "3.0 (quilt)\n")

	packages := memory.NewPackageStore()
	for _, v := range []struct{ version, suite string }{
		{"1.02.000-2", "jessie"},
		{"1.06.002-1", "sid"},
		{"0.9-1", "wheezy"},
	} {
		pkg := &domain.Package{Name: "gnubg", Version: v.version, Area: "main", VcsType: "git"}
		require.NoError(t, packages.SavePackage(ctx, pkg))
		require.NoError(t, packages.AddSuite(ctx, pkg.ID, v.suite))
	}

	return &testEnv{
		root:      root,
		packages:  packages,
		checksums: memory.NewChecksumStore(packages),
		locator:   navigation.NewLocator(packages, nil, root, "/data"),
	}
}

func (e *testEnv) sourceService() *SourceService {
	return NewSourceService(e.packages, e.checksums, e.locator, []string{"*/*.pc/"})
}
