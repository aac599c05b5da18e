package patches

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

const devNull = "/dev/null"

// FileChange counts the lines a diff changes in one file.
type FileChange struct {
	Name       string
	Insertions int
	Deletions  int
}

// Total is the number of changed lines.
func (c FileChange) Total() int {
	return c.Insertions + c.Deletions
}

// Stat is the diffstat of a patch.
type Stat struct {
	Files []FileChange
}

// Insertions returns the number of added lines over all files.
func (s *Stat) Insertions() int {
	n := 0
	for _, f := range s.Files {
		n += f.Insertions
	}
	return n
}

// Deletions returns the number of removed lines over all files.
func (s *Stat) Deletions() int {
	n := 0
	for _, f := range s.Files {
		n += f.Deletions
	}
	return n
}

// DiffStat counts insertions and deletions per file in a unified diff.
// File names lose their first path component, as with "diffstat -p1".
// Text around the diffs (patch headers, signatures) is ignored.
func DiffStat(r io.Reader) (*Stat, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}

	changes := make(map[string]*FileChange)
	for _, fd := range fileDiffs {
		name := diffName(fd.NewName)
		if name == devNull || name == "" {
			name = diffName(fd.OrigName)
		}
		name = stripComponent(name)
		c := changes[name]
		if c == nil {
			c = &FileChange{Name: name}
			changes[name] = c
		}
		for _, h := range fd.Hunks {
			countHunk(c, h)
		}
	}

	stat := &Stat{Files: make([]FileChange, 0, len(changes))}
	for _, c := range changes {
		stat.Files = append(stat.Files, *c)
	}
	sort.Slice(stat.Files, func(i, j int) bool {
		return stat.Files[i].Name < stat.Files[j].Name
	})
	return stat, nil
}

// countHunk adds the changed lines of h to c. Counting stops once the
// line counts from the hunk header are used up, so a trailing "-- "
// signature is not taken for a deletion.
func countHunk(c *FileChange, h *diff.Hunk) {
	oldLeft, newLeft := h.OrigLines, h.NewLines
	scanner := bufio.NewScanner(bytes.NewReader(h.Body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() && (oldLeft > 0 || newLeft > 0) {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "+"):
			c.Insertions++
			newLeft--
		case strings.HasPrefix(line, "-"):
			c.Deletions++
			oldLeft--
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file"
		default:
			oldLeft--
			newLeft--
		}
	}
}

// diffName drops a timestamp trailing the file name of a header line.
func diffName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func stripComponent(name string) string {
	if _, rest, ok := strings.Cut(name, "/"); ok && rest != "" {
		return rest
	}
	return name
}

// String renders the stat like "diffstat -f0": one
// " name | total \tins +\tdel -\t0 !" line per file and a summary line.
func (s *Stat) String() string {
	nameWidth, countWidth := 0, 1
	for _, f := range s.Files {
		nameWidth = max(nameWidth, len(f.Name))
		countWidth = max(countWidth, len(strconv.Itoa(f.Total())))
	}

	var b strings.Builder
	for _, f := range s.Files {
		fmt.Fprintf(&b, " %-*s | %*d \t%d +\t%d -\t%d !\n",
			nameWidth, f.Name, countWidth, f.Total(), f.Insertions, f.Deletions, 0)
	}

	fmt.Fprintf(&b, " %d %s changed", len(s.Files), plural(len(s.Files), "file", "files"))
	if ins := s.Insertions(); ins > 0 {
		fmt.Fprintf(&b, ", %d %s(+)", ins, plural(ins, "insertion", "insertions"))
	}
	if del := s.Deletions(); del > 0 {
		fmt.Fprintf(&b, ", %d %s(-)", del, plural(del, "deletion", "deletions"))
	}
	b.WriteString("\n")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ParseDeltas splits rendered diffstat output into per-file rows and
// the summary line, which is returned with a leading newline.
func ParseDeltas(summary string) ([]domain.FileDelta, string) {
	summary = strings.TrimRight(summary, "\n")
	if summary == "" {
		return nil, ""
	}
	lines := strings.Split(summary, "\n")
	deltas := make([]domain.FileDelta, 0, len(lines)-1)
	for _, line := range lines[:len(lines)-1] {
		path, rest, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		deltas = append(deltas, domain.FileDelta{
			FilePath: strings.ReplaceAll(path, " ", ""),
			Deltas:   rest,
		})
	}
	return deltas, "\n" + lines[len(lines)-1]
}
