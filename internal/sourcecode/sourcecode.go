// Package sourcecode prepares text files for display: numbered lines,
// highlighted ranges, line annotations and a highlight.js language hint.
package sourcecode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// maxLineLength bounds a single scanned line.
const maxLineLength = 16 * 1024 * 1024

// File is a source file loaded for display.
type File struct {
	name       string
	lines      []string
	highlights Highlight
	messages   []domain.CodeMessage
	lang       string
}

// Open reads the file at path.
func Open(path string, opts domain.CodeOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()
	return Read(filepath.Base(path), f, opts)
}

// Read loads a source file named name from r.
func Read(name string, r io.Reader, opts domain.CodeOptions) (*File, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLines)
	for scanner.Scan() {
		lines = append(lines, strings.ToValidUTF8(scanner.Text(), "�"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	return &File{
		name:       name,
		lines:      lines,
		highlights: ParseHighlight(opts.Highlight),
		messages:   ParseMessages(opts.Messages),
		lang:       opts.Lang,
	}, nil
}

// scanLines is bufio.ScanLines without the \r stripping.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NumberOfLines returns the line count.
func (f *File) NumberOfLines() int {
	return len(f.lines)
}

// Lines returns the numbered lines, 1-based.
func (f *File) Lines() []domain.CodeLine {
	out := make([]domain.CodeLine, len(f.lines))
	for i, text := range f.lines {
		out[i] = domain.CodeLine{
			Number:      i + 1,
			Text:        text,
			Highlighted: f.highlights.Contains(i + 1),
		}
	}
	return out
}

// Messages returns the parsed annotations.
func (f *File) Messages() []domain.CodeMessage {
	return f.messages
}

// Language returns the highlight.js class for the file.
func (f *File) Language() string {
	first := ""
	if len(f.lines) > 0 {
		first = f.lines[0]
	}
	return Language(f.name, first, f.lang)
}

// lineRange is an inclusive range of 1-based line numbers.
type lineRange struct {
	from, to int
}

// Highlight is a set of highlighted lines kept as ranges, so its size
// depends on the request and not on the numbers in it.
type Highlight []lineRange

// Contains reports whether line n is highlighted.
func (h Highlight) Contains(n int) bool {
	for _, r := range h {
		if r.from <= n && n <= r.to {
			return true
		}
	}
	return false
}

// ParseHighlight parses "3,5:7" into the lines {3, 5, 6, 7}.
// Malformed items and reversed ranges are ignored.
func ParseHighlight(ranges string) Highlight {
	var h Highlight
	if ranges == "" {
		return h
	}
	for _, item := range strings.Split(ranges, ",") {
		item = strings.TrimSpace(item)
		if begin, end, isRange := strings.Cut(item, ":"); isRange {
			from, err1 := strconv.Atoi(begin)
			to, err2 := strconv.Atoi(end)
			if err1 != nil || err2 != nil || from > to {
				continue
			}
			h = append(h, lineRange{from: from, to: to})
			continue
		}
		if n, err := strconv.Atoi(item); err == nil {
			h = append(h, lineRange{from: n, to: n})
		}
	}
	return h
}

// ParseMessages parses "position:title:message" annotations. A bad
// position becomes 1; missing parts are empty.
func ParseMessages(msgs []string) []domain.CodeMessage {
	out := make([]domain.CodeMessage, 0, len(msgs))
	for _, msg := range msgs {
		parts := strings.Split(msg, ":")
		m := domain.CodeMessage{Position: 1}
		if n, err := strconv.Atoi(parts[0]); err == nil {
			m.Position = n
		}
		if len(parts) > 1 {
			m.Title = parts[1]
		}
		if len(parts) > 2 {
			m.Message = strings.Join(parts[2:], ":")
		}
		out = append(out, m)
	}
	return out
}
