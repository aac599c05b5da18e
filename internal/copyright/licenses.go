package copyright

import (
	"regexp"
	"strings"
)

type licenseURL struct {
	re  *regexp.Regexp
	url string
}

func spdx(id string) string { return "http://spdx.org/licenses/" + id }
func osi(id string) string  { return "http://opensource.org/licenses/" + id }

// knownLicenses is searched in order; the first match wins.
var knownLicenses = []licenseURL{
	{regexp.MustCompile(`Apache-2(\.0)?`), osi("Apache-2.0")},
	{regexp.MustCompile(`Apache-1(\.0)?`), osi("Apache-1.0")},
	{regexp.MustCompile(`LGPL-2(\.1)?`), osi("LGPL-2.1")},
	{regexp.MustCompile(`LGPL-3(\.0)?`), osi("LGPL-3.0")},
	{regexp.MustCompile(`^GPL-2(\+)?`), osi("GPL-2.0")},
	{regexp.MustCompile(`^GPL-3\+?`), osi("GPL-3.0")},
	{regexp.MustCompile(`^GPL-1`), osi("GPL-1.0")},
	{regexp.MustCompile(`MPL-2(\.0)?`), osi("MPL-2.0")},
	{regexp.MustCompile(`CDDL(-)?`), osi("CDDL-1.0")},
	{regexp.MustCompile(`BSD-4-clause`), spdx("BSD-4-Clause")},
	{regexp.MustCompile(`BSD-3-clause`), osi("BSD-3-Clause")},
	{regexp.MustCompile(`BSD-2-clause`), osi("BSD-2-Clause")},
	{regexp.MustCompile(`Artistic(-2)?`), osi("Artistic-2.0")},
	{regexp.MustCompile(`ISC`), osi("ISC")},
	{regexp.MustCompile(`EFL`), osi("EFL-2.0")},
	{regexp.MustCompile(`Python`), osi("Python-2.0")},
	{regexp.MustCompile(`QPL`), osi("QPL-1.0")},
	{regexp.MustCompile(`W3C`), osi("W3C")},
	{regexp.MustCompile(`LPPL`), osi("LPPL-1.3c")},
	{regexp.MustCompile(`Zope`), osi("ZPL-2.0")},
	{regexp.MustCompile(`CC-BY-1\.0`), spdx("CC-BY-1.0")},
	{regexp.MustCompile(`CC-BY-2\.0`), spdx("CC-BY-2.0")},
	{regexp.MustCompile(`CC-BY-2\.5`), spdx("CC-BY-2.5")},
	{regexp.MustCompile(`CC-BY-3\.0`), spdx("CC-BY-3.0")},
	{regexp.MustCompile(`CC-BY-SA-1\.0`), spdx("CC-BY-SA-1.0")},
	{regexp.MustCompile(`CC-BY-SA-2\.0`), spdx("CC-BY-SA-2.0")},
	{regexp.MustCompile(`CC-BY-SA-2\.5`), spdx("CC-BY-SA-2.5")},
	{regexp.MustCompile(`CC-BY-SA-3\.0`), spdx("CC-BY-SA-3.0")},
	{regexp.MustCompile(`CC-BY-ND-1\.0`), spdx("CC-BY-ND-1.0")},
	{regexp.MustCompile(`CC-BY-ND-2\.0`), spdx("CC-BY-ND-2.0")},
	{regexp.MustCompile(`CC-BY-ND-2\.5`), spdx("CC-BY-ND-2.5")},
	{regexp.MustCompile(`CC-BY-ND-3\.0`), spdx("CC-BY-ND-3.0")},
	{regexp.MustCompile(`CC-BY-NC-1\.0`), spdx("CC-BY-NC-1.0")},
	{regexp.MustCompile(`CC-BY-NC-2\.0`), spdx("CC-BY-NC-2.0")},
	{regexp.MustCompile(`CC-BY-NC-2\.5`), spdx("CC-BY-NC-2.5")},
	{regexp.MustCompile(`CC-BY-NC-3\.0`), spdx("CC-BY-NC-3.0")},
	{regexp.MustCompile(`CC-BY-NC-SA-1\.0`), spdx("CC-BY-NC-SA-1.0")},
	{regexp.MustCompile(`CC-BY-NC-SA-2\.0`), spdx("CC-BY-NC-SA-2.0")},
	{regexp.MustCompile(`CC-BY-NC-SA-2\.5`), spdx("CC-BY-NC-SA-2.5")},
	{regexp.MustCompile(`CC-BY-NC-SA-3\.0`), spdx("CC-BY-NC-SA-3.0")},
	{regexp.MustCompile(`CC-BY-NC-ND-1\.0`), spdx("CC-BY-NC-ND-1.0")},
	{regexp.MustCompile(`CC-BY-NC-ND-2\.0`), spdx("CC-BY-NC-ND-2.0")},
	{regexp.MustCompile(`CC-BY-NC-ND-2\.5`), spdx("CC-BY-NC-ND-2.5")},
	{regexp.MustCompile(`CC-BY-NC-ND-3\.0`), spdx("CC-BY-NC-ND-3.0")},
	{regexp.MustCompile(`GFDL-1\.1`), spdx("GFDL-1.1")},
	{regexp.MustCompile(`GFDL-1\.2`), spdx("GFDL-1.2")},
	{regexp.MustCompile(`GFDL-1\.3`), spdx("GFDL-1.3")},
	{regexp.MustCompile(`GFDL-NIV`), "#"},
	{regexp.MustCompile(`GFDL-1\.0`), spdx("GFDL-1.0")},
	{regexp.MustCompile(`CC0`), spdx("CC0-1.0")},
}

// LicenseURL returns a reference text URL for a license name, or "".
func LicenseURL(name string) string {
	for _, l := range knownLicenses {
		if l.re.MatchString(name) {
			return l.url
		}
	}
	return ""
}

var synopsisSeparator = regexp.MustCompile(`, | ?and | ?or `)

// SplitSynopsis splits a synopsis such as "GPL-2+ or Artistic" into the
// license names it combines.
func SplitSynopsis(synopsis string) []string {
	if !strings.Contains(synopsis, "and") && !strings.Contains(synopsis, "or") {
		return []string{synopsis}
	}
	var names []string
	for _, part := range synopsisSeparator.Split(synopsis, -1) {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Link returns where the text of a license name can be read: a known
// reference URL, else the anchor of a standalone License paragraph in d.
func (d *Document) Link(name string) string {
	if url := LicenseURL(name); url != "" {
		return url
	}
	return d.Anchor(name)
}

// GlobPath returns the path, relative to the version root, of the
// deepest directory a Files pattern names without wildcards. Hidden
// patterns get no path; ok is false for them.
func GlobPath(pattern string) (string, bool) {
	pattern = strings.TrimPrefix(pattern, "./")
	if strings.HasPrefix(pattern, ".") {
		return "", false
	}
	if !strings.ContainsAny(pattern, "*?") {
		return pattern, true
	}
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if strings.ContainsAny(part, "*?") {
			return strings.Join(parts[:i], "/"), true
		}
	}
	return pattern, true
}
