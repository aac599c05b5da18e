package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/services"
	"github.com/custodia-labs/debsources/internal/navigation"
)

const fixPatch = `Description: Fix the build
Bug: #123456
---
--- a/src/main.c
+++ b/src/main.c
@@ -1 +1,2 @@
-int main(void) { return 0; }
+int main(void) {
+	return 0; }
`

// readmeSum is the sha256 of "GNU Backgammon\n".
const readmeSum = "99bb4326dfed91112f9d04c12ba6311146c8c2c03150790a40c3d0d4b3edf47f"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupTestServices wires the command globals over memory stores and a
// small mirror holding gnubg 1.02.000-2 (jessie) and 1.06.002-1 (sid).
// It returns the mirror root and a cleanup func.
func setupTestServices(t *testing.T) (string, func()) {
	t.Helper()
	root := t.TempDir()
	ctx := context.Background()

	old := filepath.Join(root, "main", "g", "gnubg", "1.02.000-2")
	writeFile(t, filepath.Join(old, "README"), "GNU Backgammon\n")
	writeFile(t, filepath.Join(old, "src", "main.c"), "int main(void) { return 0; }\n")
	writeFile(t, filepath.Join(old, "debian", "source", "format"), "3.0 (quilt)\n")
	writeFile(t, filepath.Join(old, "debian", "patches", "series"), "01-fix.patch\n")
	writeFile(t, filepath.Join(old, "debian", "patches", "01-fix.patch"), fixPatch)
	writeFile(t, filepath.Join(old, "debian", "copyright"), `Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/

Files: *
Copyright: 1997-2003 Gary Wong
License: GPL-2+
`)
	require.NoError(t, os.MkdirAll(filepath.Join(old, ".pc"), 0o755))

	cur := filepath.Join(root, "main", "g", "gnubg", "1.06.002-1")
	writeFile(t, filepath.Join(cur, "README"), "GNU Backgammon 1.06\n")
	writeFile(t, filepath.Join(cur, "debian", "source", "format"), "1.0\n")

	packages := memory.NewPackageStore()
	for _, v := range []struct{ version, suite string }{
		{"1.02.000-2", "jessie"},
		{"1.06.002-1", "sid"},
	} {
		pkg := &domain.Package{Name: "gnubg", Version: v.version, Area: "main"}
		require.NoError(t, packages.SavePackage(ctx, pkg))
		require.NoError(t, packages.AddSuite(ctx, pkg.ID, v.suite))
	}
	checksums := memory.NewChecksumStore(packages)
	locator := navigation.NewLocator(packages, nil, root, "/data")

	settings := domain.DefaultSettings()
	settings.SourcesDir = root

	settingsService = services.NewSettingsService(memory.NewConfigStore())
	sourceService = services.NewSourceService(packages, checksums, locator, settings.HiddenFiles)
	patchService = services.NewPatchService(packages, locator)
	checksumService = services.NewChecksumService(checksums)
	importService = services.NewImportService(packages, checksums, locator)
	copyrightService = services.NewCopyrightService(packages, checksums, locator)
	statsService = services.NewStatsService(packages, checksums)
	currentSettings = settings

	return root, func() {
		settingsService = nil
		sourceService = nil
		patchService = nil
		checksumService = nil
		importService = nil
		copyrightService = nil
		statsService = nil
		currentSettings = nil
		areaCache = nil
	}
}

// execute runs the root command with fresh flag values and returns its
// output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
