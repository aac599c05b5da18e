package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCounts_Add(t *testing.T) {
	c := StatsCounts{SourcePackages: 1, SourceFiles: 10, DiskUsage: 100}
	c.Add(StatsCounts{SourcePackages: 2, SourceFiles: 5, DiskUsage: 50})

	assert.Equal(t, StatsCounts{SourcePackages: 3, SourceFiles: 15, DiskUsage: 150}, c)
}

func TestSuiteStats_Results(t *testing.T) {
	s := SuiteStats{
		Suite: "jessie",
		Total: StatsCounts{SourcePackages: 3, SourceFiles: 20, DiskUsage: 4096},
		Areas: map[string]StatsCounts{
			"main":    {SourcePackages: 2, SourceFiles: 20, DiskUsage: 4096},
			"contrib": {SourcePackages: 1},
		},
	}

	results := s.Results()

	assert.Len(t, results, 9)
	assert.Equal(t, int64(3), results["debian_jessie.source_packages"])
	assert.Equal(t, int64(4096), results["debian_jessie.disk_usage"])
	assert.Equal(t, int64(20), results["debian_jessie.main.source_files"])
	assert.Equal(t, int64(1), results["debian_jessie.contrib.source_packages"])
}

func TestArchiveStats_Results(t *testing.T) {
	a := ArchiveStats{
		Suites: []string{"jessie", "sid"},
		Total:  SuiteStats{Total: StatsCounts{SourcePackages: 5}},
		PerSuite: []SuiteStats{
			{Suite: "jessie", Total: StatsCounts{SourcePackages: 2}},
			{Suite: "sid", Total: StatsCounts{SourcePackages: 3}},
		},
	}

	results := a.Results()

	assert.Equal(t, int64(5), results["total.source_packages"])
	assert.Equal(t, int64(2), results["debian_jessie.source_packages"])
	assert.Equal(t, int64(3), results["debian_sid.source_packages"])
}
