// Package copyright reads machine-readable debian/copyright files
// (DEP-5) and maps the licenses they name to reference texts.
package copyright

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gobwas/glob"
	"pault.ag/go/debian/control"
)

// Path is the copyright file relative to a version root.
const Path = "debian/copyright"

// ErrNotMachineReadable is returned by Parse for free-form files.
var ErrNotMachineReadable = errors.New("copyright: not machine-readable")

// requiredFields must all appear before a file is parsed as DEP-5.
var requiredFields = []string{"Format:", "Files:", "Copyright:", "License:"}

// IsMachineReadable reports whether data looks like a DEP-5 file.
func IsMachineReadable(data []byte) bool {
	for _, f := range requiredFields {
		if !bytes.Contains(data, []byte(f)) {
			return false
		}
	}
	return true
}

// License is a License field: a synopsis line and an optional text.
type License struct {
	Synopsis string
	Text     string
}

// Files is a Files paragraph.
type Files struct {
	Patterns  []string
	Copyright string
	License   License
	Comment   string

	globs []glob.Glob
}

// Matches reports whether path is covered by one of the patterns.
func (f *Files) Matches(path string) bool {
	for _, g := range f.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// StandaloneLicense is a paragraph carrying only a License field.
type StandaloneLicense struct {
	License License
	Comment string
}

// Document is a parsed DEP-5 file.
type Document struct {
	Format       string
	UpstreamName string
	Source       string
	Files        []Files
	Licenses     []StandaloneLicense
}

// paragraph receives one stanza from the control decoder.
type paragraph struct {
	control.Paragraph
}

// Parse reads a DEP-5 file. The header paragraph is the first one; the
// others are Files or standalone License paragraphs.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading copyright: %w", err)
	}
	if !IsMachineReadable(data) {
		return nil, ErrNotMachineReadable
	}

	decoder, err := control.NewDecoder(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("reading copyright: %w", err)
	}

	doc := &Document{}
	for i := 0; ; i++ {
		var p paragraph
		err := decoder.Decode(&p)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotMachineReadable, err)
		}

		if i == 0 {
			if value(p.Paragraph, "Format") == "" {
				return nil, ErrNotMachineReadable
			}
			doc.Format = value(p.Paragraph, "Format")
			doc.UpstreamName = value(p.Paragraph, "Upstream-Name")
			doc.Source = value(p.Paragraph, "Source")
			continue
		}

		files := value(p.Paragraph, "Files")
		switch {
		case files != "":
			f := Files{
				Patterns:  strings.Fields(files),
				Copyright: value(p.Paragraph, "Copyright"),
				License:   license(p.Paragraph),
				Comment:   value(p.Paragraph, "Comment"),
			}
			for _, pattern := range f.Patterns {
				g, err := compilePattern(pattern)
				if err != nil {
					return nil, fmt.Errorf("%w: pattern %q: %v", ErrNotMachineReadable, pattern, err)
				}
				f.globs = append(f.globs, g)
			}
			doc.Files = append(doc.Files, f)
		case value(p.Paragraph, "License") != "":
			doc.Licenses = append(doc.Licenses, StandaloneLicense{
				License: license(p.Paragraph),
				Comment: value(p.Paragraph, "Comment"),
			})
		}
	}
	if len(doc.Files) == 0 {
		return nil, ErrNotMachineReadable
	}
	return doc, nil
}

// FindFiles returns the paragraph governing path. The last matching
// paragraph wins.
func (d *Document) FindFiles(path string) *Files {
	path = strings.TrimPrefix(path, "./")
	for i := len(d.Files) - 1; i >= 0; i-- {
		if d.Files[i].Matches(path) {
			return &d.Files[i]
		}
	}
	return nil
}

// LicenseOf returns the license synopsis governing path, or "" when no
// paragraph covers it.
func (d *Document) LicenseOf(path string) string {
	if f := d.FindFiles(path); f != nil {
		return f.License.Synopsis
	}
	return ""
}

// Anchor returns "#license-N" when name is the synopsis of the N-th
// standalone License paragraph, and "" otherwise.
func (d *Document) Anchor(name string) string {
	for i, l := range d.Licenses {
		if l.License.Synopsis == name {
			return fmt.Sprintf("#license-%d", i)
		}
	}
	return ""
}

// compilePattern compiles a Files pattern. Only "*" and "?" are
// wildcards, and "*" also matches "/".
func compilePattern(pattern string) (glob.Glob, error) {
	pattern = strings.TrimPrefix(pattern, "./")
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '[', ']', '{', '}', '!':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return glob.Compile(b.String())
}

// field looks a key up case-insensitively, keeping continuation lines.
func field(p control.Paragraph, key string) string {
	for k, v := range p.Values {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// value is the whole field with continuation lines unfolded.
func value(p control.Paragraph, key string) string {
	first, rest := split(field(p, key))
	if rest == "" {
		return first
	}
	if first == "" {
		return rest
	}
	return first + "\n" + rest
}

func license(p control.Paragraph) License {
	synopsis, text := split(field(p, "License"))
	return License{Synopsis: synopsis, Text: text}
}

// split separates the first line of a field from its continuation lines.
// One leading blank is dropped from each continuation line and a lone
// "." stands for an empty line.
func split(v string) (string, string) {
	first, rest, _ := strings.Cut(v, "\n")
	first = strings.TrimSpace(first)
	if rest == "" {
		return first, ""
	}

	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if line != "" && (line[0] == ' ' || line[0] == '\t') {
			line = line[1:]
		}
		if strings.TrimSpace(line) == "." {
			line = ""
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return first, strings.Trim(strings.Join(lines, "\n"), "\n")
}
