package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceEntry_Fields(t *testing.T) {
	entry := SourceEntry{
		Package:    "gnubg",
		Version:    "1.02.000-2",
		Directory:  "pool/main/g/gnubg",
		Format:     "3.0 (quilt)",
		VcsType:    "git",
		VcsBrowser: "https://salsa.debian.org/games-team/gnubg",
	}

	assert.Equal(t, "gnubg", entry.Package)
	assert.Equal(t, "pool/main/g/gnubg", entry.Directory)
	assert.Equal(t, "git", entry.VcsType)
}

func TestImportStats_ZeroValue(t *testing.T) {
	var stats ImportStats
	assert.Zero(t, stats.Packages)
	assert.Zero(t, stats.Versions)
	assert.Zero(t, stats.Skipped)
}
