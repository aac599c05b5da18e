package patches

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

const enableDebugPatch = `From: Rebecca Palmer <rebecca_palmer@zoho.com>
Date: Sat, 21 Feb 2015 17:17:59 +0000
Subject: Enable test debug

Turn on udebug so tests print their full output, and mark failures
by "failed:" instead of invisible-in-logs colour.
---
 utests/builtin_exp.cpp | 4 ++--
 utests/utest_helper.hpp | 4 +++-
 2 files changed, 5 insertions(+), 3 deletions(-)

--- a/utests/builtin_exp.cpp
+++ b/utests/builtin_exp.cpp
@@ -1,6 +1,6 @@
 #include "utest_helper.hpp"
-#define udebug 0
+#define udebug 1
 int main()
 {
-  return 0;
+  return 1;
 }
--- a/utests/utest_helper.hpp
+++ b/utests/utest_helper.hpp
@@ -10,3 +10,4 @@ struct Logger
 class A;
-#define FAILED "\033[31m"
+#define FAILED "failed:"
+#define PASSED "passed"
 class B;
`

func TestIsSupported(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"3.0 (quilt)", true},
		{"3.0 (native)", true},
		{"3.0 (quilt)\n", true},
		{"1.0", false},
		{"3.0 (git)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSupported(tt.format))
		})
	}
}

func TestPatchPath(t *testing.T) {
	assert.Equal(t, "debian/patches/fix.patch", PatchPath("fix.patch"))
}

func TestParseSeries(t *testing.T) {
	series := `# patches applied in order
Enhance-debug-output.patch

Debian-compliant-compiler-flags-handling.patch -p1
   Link-against-terminfo.patch   
#disabled.patch
`
	entries, err := ParseSeries(strings.NewReader(series))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Enhance-debug-output.patch", entries[0].Name)
	assert.Equal(t, "", entries[0].Options)
	assert.Equal(t, "Debian-compliant-compiler-flags-handling.patch", entries[1].Name)
	assert.Equal(t, "-p1", entries[1].Options)
	assert.Equal(t, "Debian-compliant-compiler-flags-handling.patch -p1", entries[1].Line)
	assert.Equal(t, "Link-against-terminfo.patch", entries[2].Name)
}

func TestParseSeries_Empty(t *testing.T) {
	entries, err := ParseSeries(strings.NewReader("# nothing\n\n"))

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDetails(t *testing.T) {
	t.Run("subject and body", func(t *testing.T) {
		desc, bug := Details(enableDebugPatch)

		assert.Equal(t, " enable test debug\n\nTurn on udebug so tests print their full output, and mark failures\n"+
			"by \"failed:\" instead of invisible-in-logs colour.\n\n", desc)
		assert.Equal(t, "", bug)
	})

	t.Run("description with bug", func(t *testing.T) {
		patch := "Description: Collected Debian patches for gnubg\n" +
			" The gnubg package is maintained in Git.\n" +
			"Bug: #672479\n" +
			"Author: Russ Allbery <rra@debian.org>\n" +
			"--- a/Makefile\n+++ b/Makefile\n"

		desc, bug := Details(patch)

		assert.Equal(t, " collected debian patches for gnubg\n The gnubg package is maintained in Git.\n", desc)
		assert.Equal(t, "672479", bug)
	})

	t.Run("known field ends description", func(t *testing.T) {
		patch := "Description: fix build\nlong text\nForwarded: no\nnot part of it\n--- a/x\n"

		desc, _ := Details(patch)

		assert.Equal(t, " fix build\nlong text\n", desc)
	})

	t.Run("no description header", func(t *testing.T) {
		desc, bug := Details("fix buildflags\n--- a/makefile.unix\n+++ b/makefile.unix\n")

		assert.Equal(t, domain.NoDescription, desc)
		assert.Equal(t, "", bug)
	})
}

func TestDiffStat(t *testing.T) {
	stat, err := DiffStat(strings.NewReader(enableDebugPatch))

	require.NoError(t, err)
	require.Len(t, stat.Files, 2)
	assert.Equal(t, FileChange{Name: "utests/builtin_exp.cpp", Insertions: 2, Deletions: 2}, stat.Files[0])
	assert.Equal(t, FileChange{Name: "utests/utest_helper.hpp", Insertions: 2, Deletions: 1}, stat.Files[1])
	assert.Equal(t, 4, stat.Insertions())
	assert.Equal(t, 3, stat.Deletions())
}

func TestDiffStat_NewAndDeletedFiles(t *testing.T) {
	patch := `--- /dev/null
+++ b/debian/new.txt
@@ -0,0 +1,2 @@
+one
+two
--- a/old.txt
+++ /dev/null
@@ -1 +0,0 @@
-gone
`
	stat, err := DiffStat(strings.NewReader(patch))

	require.NoError(t, err)
	require.Len(t, stat.Files, 2)
	assert.Equal(t, "debian/new.txt", stat.Files[0].Name)
	assert.Equal(t, 2, stat.Files[0].Insertions)
	assert.Equal(t, "old.txt", stat.Files[1].Name)
	assert.Equal(t, 1, stat.Files[1].Deletions)
}

func TestDiffStat_SignatureAndTimestamps(t *testing.T) {
	patch := "Description: fix the build\n" +
		"--- a/Makefile\t2015-02-21 17:17:59.000000000 +0000\n" +
		"+++ b/Makefile\t2015-02-22 10:00:00.000000000 +0000\n" +
		"@@ -1,2 +1,2 @@\n" +
		" all:\n" +
		"-\tcc -o app app.c\n" +
		"+\t$(CC) -o app app.c\n" +
		"-- \n" +
		"2.1.4\n"

	stat, err := DiffStat(strings.NewReader(patch))

	require.NoError(t, err)
	require.Len(t, stat.Files, 1)
	assert.Equal(t, FileChange{Name: "Makefile", Insertions: 1, Deletions: 1}, stat.Files[0])
}

func TestDiffStat_NoDiff(t *testing.T) {
	stat, err := DiffStat(strings.NewReader("Description: placeholder\nForwarded: not-needed\n"))

	require.NoError(t, err)
	assert.Empty(t, stat.Files)
	assert.Equal(t, " 0 files changed\n", stat.String())
}

func TestStat_String(t *testing.T) {
	stat := &Stat{Files: []FileChange{
		{Name: "src/cl_utils.h", Insertions: 5, Deletions: 3},
		{Name: "utests/builtin_exp.cpp", Insertions: 1, Deletions: 1},
	}}

	out := stat.String()

	assert.Equal(t,
		" src/cl_utils.h         | 8 \t5 +\t3 -\t0 !\n"+
			" utests/builtin_exp.cpp | 2 \t1 +\t1 -\t0 !\n"+
			" 2 files changed, 6 insertions(+), 4 deletions(-)\n",
		out)
	assert.Contains(t, out, "8 \t5 +\t3 -\t0 !\n utests/builtin_exp.cpp ")
}

func TestStat_String_Singular(t *testing.T) {
	stat := &Stat{Files: []FileChange{{Name: "a", Insertions: 1}}}

	assert.Equal(t, " a | 1 \t1 +\t0 -\t0 !\n 1 file changed, 1 insertion(+)\n", stat.String())
	assert.Equal(t, " 0 files changed\n", (&Stat{}).String())
}

func TestParseDeltas(t *testing.T) {
	summary := " src/cl_utils.h         | 8 \t5 +\t3 -\t0 !\n" +
		" utests/builtin_exp.cpp | 2 \t1 +\t1 -\t0 !\n" +
		" 2 files changed, 6 insertions(+), 4 deletions(-)\n"

	deltas, total := ParseDeltas(summary)

	require.Len(t, deltas, 2)
	assert.Equal(t, "src/cl_utils.h", deltas[0].FilePath)
	assert.Equal(t, " 8 \t5 +\t3 -\t0 !", deltas[0].Deltas)
	assert.Equal(t, "utests/builtin_exp.cpp", deltas[1].FilePath)
	assert.Equal(t, "\n 2 files changed, 6 insertions(+), 4 deletions(-)", total)
}

func TestParseDeltas_Empty(t *testing.T) {
	deltas, total := ParseDeltas("")

	assert.Nil(t, deltas)
	assert.Equal(t, "", total)
}
