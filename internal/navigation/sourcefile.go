package navigation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// encodingSample bounds how much of a file is read to guess its encoding.
const encodingSample = 64 * 1024

// extMIMETypes refines text/plain for source files the detector cannot
// tell apart by content.
var extMIMETypes = map[string]string{
	".c": "text/x-c", ".h": "text/x-c",
	".cc": "text/x-c++", ".cpp": "text/x-c++", ".hpp": "text/x-c++", ".cxx": "text/x-c++",
	".py": "text/x-python", ".pl": "text/x-perl", ".pm": "text/x-perl",
	".rb": "text/x-ruby", ".go": "text/x-go", ".rs": "text/x-rust",
	".sh": "text/x-shellscript", ".java": "text/x-java",
	".diff": "text/x-diff", ".patch": "text/x-diff",
	".ml": "text/x-ocaml", ".hs": "text/x-haskell", ".el": "text/x-lisp",
	".tex": "text/x-tex", ".md": "text/markdown", ".mk": "text/x-makefile",
}

// textMIMETypes are non text/* types that are still displayable.
var textMIMETypes = map[string]bool{
	"application/json":          true,
	"application/xml":           true,
	"application/javascript":    true,
	"application/x-javascript":  true,
	"application/x-sh":          true,
	"application/x-shellscript": true,
	"application/x-perl":        true,
	"application/x-ruby":        true,
	"application/x-awk":         true,
	"application/x-tcl":         true,
	"application/x-empty":       true,
	"inode/x-empty":             true,
	"image/svg+xml":             true,
}

// ChecksumLookup finds the recorded sha256 of a file.
type ChecksumLookup interface {
	Checksum(ctx context.Context, name, version, path string) (string, error)
}

// SourceFile is a file location.
type SourceFile struct {
	location *Location
	mime     domain.MIME
}

// NewSourceFile detects the media type and encoding of loc.
func NewSourceFile(loc *Location) (*SourceFile, error) {
	m, err := DetectMIME(loc.SourcesPath)
	if err != nil {
		return nil, err
	}
	return &SourceFile{location: loc, mime: m}, nil
}

// MIME returns the detected media type and encoding.
func (f *SourceFile) MIME() domain.MIME {
	return f.mime
}

// IsText reports whether the file can be displayed as text.
func (f *SourceFile) IsText() bool {
	return IsTextMIME(f.mime.Type)
}

// RawURL is the URL the file is served under.
func (f *SourceFile) RawURL() string {
	return f.location.StaticPath
}

// Sha256 returns the recorded checksum of the file, or "" if none is known.
func (f *SourceFile) Sha256(ctx context.Context, lookup ChecksumLookup) (string, error) {
	if lookup == nil {
		return "", nil
	}
	sum, err := lookup.Checksum(ctx, f.location.Package, f.location.Version, f.location.Path)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up checksum: %w", err)
	}
	return sum, nil
}

// IsTextMIME reports whether a media type can be displayed as text.
func IsTextMIME(t string) bool {
	return strings.HasPrefix(t, "text/") || textMIMETypes[t]
}

// DetectMIME returns the media type and character encoding of the file at
// path. Encodings follow file(1): "us-ascii", "utf-8", "binary", or the
// charset reported by the detector.
func DetectMIME(path string) (domain.MIME, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.MIME{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sample, err := io.ReadAll(io.LimitReader(f, encodingSample))
	if err != nil {
		return domain.MIME{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(sample) == 0 {
		return domain.MIME{Type: "inode/x-empty", Encoding: "binary"}, nil
	}

	detected := mimetype.Detect(sample)
	mediaType, params, err := mime.ParseMediaType(detected.String())
	if err != nil {
		mediaType = detected.String()
	}
	if mediaType == "text/plain" {
		if t, ok := extMIMETypes[strings.ToLower(filepath.Ext(path))]; ok {
			mediaType = t
		}
	}

	return domain.MIME{Type: mediaType, Encoding: encodingOf(mediaType, sample, params["charset"])}, nil
}

func encodingOf(mediaType string, sample []byte, charset string) string {
	if !IsTextMIME(mediaType) {
		return "binary"
	}
	ascii := true
	for _, b := range sample {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	switch {
	case ascii:
		return "us-ascii"
	case utf8.Valid(trimPartialRune(sample)):
		return "utf-8"
	case charset != "" && !strings.EqualFold(charset, "utf-8"):
		return strings.ToLower(charset)
	default:
		return "unknown-8bit"
	}
}

// trimPartialRune drops a multi-byte sequence cut off by the sample limit.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}
