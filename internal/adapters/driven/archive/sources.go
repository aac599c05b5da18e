// Package archive reads Debian archive indices.
package archive

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"pault.ag/go/debian/control"
	"pault.ag/go/debian/version"
	"xi2.org/x/xz"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

var _ driven.SourceIndex = (*SourcesReader)(nil)

// source is one paragraph of a Sources index. Fields not named here stay
// reachable through the embedded Paragraph.
type source struct {
	control.Paragraph

	Package   string `required:"true"`
	Directory string
	Format    string
	Version   version.Version
}

type decompressor func(io.Reader) (io.Reader, error)

func gzipReader(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

func bzip2Reader(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r), nil
}

func xzReader(r io.Reader) (io.Reader, error) {
	return xz.NewReader(r, 0)
}

var decompressors = map[string]decompressor{
	".gz":  gzipReader,
	".bz2": bzip2Reader,
	".xz":  xzReader,
}

// Decompress wraps r according to the compression suffix of name.
// Unknown suffixes are read as plain text.
func Decompress(r io.Reader, name string) (io.Reader, error) {
	for suffix, fn := range decompressors {
		if strings.HasSuffix(name, suffix) {
			return fn(r)
		}
	}
	return r, nil
}

// SourcesReader iterates over the paragraphs of a Sources index.
type SourcesReader struct {
	decoder *control.Decoder
	closer  io.Closer
}

// NewSourcesReader reads a Sources index from r. name is only used to pick
// a decompressor.
func NewSourcesReader(r io.Reader, name string) (*SourcesReader, error) {
	plain, err := Decompress(r, name)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	decoder, err := control.NewDecoder(plain, nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &SourcesReader{decoder: decoder}, nil
}

// OpenSources opens a Sources index on disk.
func OpenSources(path string) (*SourcesReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewSourcesReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Next returns the next entry, or io.EOF after the last one.
func (r *SourcesReader) Next() (*domain.SourceEntry, error) {
	var next source
	if err := r.decoder.Decode(&next); err != nil {
		return nil, err
	}

	entry := &domain.SourceEntry{
		Package:   next.Package,
		Version:   next.Version.String(),
		Directory: next.Directory,
		Format:    next.Format,
	}
	entry.VcsType, _ = vcsField(next.Paragraph)
	entry.VcsBrowser = field(next.Paragraph, "Vcs-Browser")
	return entry, nil
}

// Close releases the underlying file, if any.
func (r *SourcesReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// field looks a key up case-insensitively.
func field(p control.Paragraph, key string) string {
	for k, v := range p.Values {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// vcsField returns the repository kind and URL of the first Vcs-* field
// other than Vcs-Browser, in key order.
func vcsField(p control.Paragraph) (string, string) {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lower := strings.ToLower(k)
		if !strings.HasPrefix(lower, "vcs-") || lower == "vcs-browser" {
			continue
		}
		return strings.TrimPrefix(lower, "vcs-"), strings.TrimSpace(p.Values[k])
	}
	return "", ""
}
