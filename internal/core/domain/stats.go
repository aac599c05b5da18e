package domain

// StatsCounts are the size figures of a set of package versions.
// SourceFiles and DiskUsage only cover versions whose checksums were
// computed.
type StatsCounts struct {
	SourcePackages int64 `json:"source_packages"`
	SourceFiles    int64 `json:"source_files"`
	// DiskUsage is the total size in bytes of the regular files.
	DiskUsage int64 `json:"disk_usage"`
}

// Add accumulates o into c.
func (c *StatsCounts) Add(o StatsCounts) {
	c.SourcePackages += o.SourcePackages
	c.SourceFiles += o.SourceFiles
	c.DiskUsage += o.DiskUsage
}

// SuiteStats are the figures of one suite, or of the whole archive when
// Suite is empty.
type SuiteStats struct {
	Suite string                 `json:"suite"`
	Total StatsCounts            `json:"total"`
	Areas map[string]StatsCounts `json:"areas"`
}

// Results flattens the figures into "<prefix>.<metric>" and
// "<prefix>.<area>.<metric>" keys, with prefix "debian_<suite>" or
// "total".
func (s SuiteStats) Results() map[string]int64 {
	prefix := "total"
	if s.Suite != "" {
		prefix = "debian_" + s.Suite
	}
	out := make(map[string]int64, 3*(len(s.Areas)+1))
	put := func(p string, c StatsCounts) {
		out[p+".source_packages"] = c.SourcePackages
		out[p+".source_files"] = c.SourceFiles
		out[p+".disk_usage"] = c.DiskUsage
	}
	put(prefix, s.Total)
	for area, c := range s.Areas {
		put(prefix+"."+area, c)
	}
	return out
}

// ArchiveStats are the figures of every suite and of the whole archive.
type ArchiveStats struct {
	Suites   []string     `json:"suites"`
	Total    SuiteStats   `json:"total"`
	PerSuite []SuiteStats `json:"per_suite"`
}

// Results merges the flattened figures of the archive and every suite.
func (a ArchiveStats) Results() map[string]int64 {
	out := a.Total.Results()
	for _, s := range a.PerSuite {
		for k, v := range s.Results() {
			out[k] = v
		}
	}
	return out
}
