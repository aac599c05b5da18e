package patches

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SeriesEntry is one patch line of a quilt series file.
type SeriesEntry struct {
	// Line is the stripped series line.
	Line string
	// Name is the patch file name, the first space separated token.
	Name string
	// Options holds the rest of the line, e.g. "-p0".
	Options string
}

// ParseSeries reads a series file. Blank lines and # comments are skipped.
func ParseSeries(r io.Reader) ([]SeriesEntry, error) {
	var entries []SeriesEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, options, _ := strings.Cut(line, " ")
		entries = append(entries, SeriesEntry{
			Line:    line,
			Name:    name,
			Options: strings.TrimSpace(options),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading series: %w", err)
	}
	return entries, nil
}
