package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// palette colours, shared with the listing styles.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourSuccess   = lipgloss.Color("#A6E3A1")
	colourWarning   = lipgloss.Color("#F9E2AF")
)

// outputStyles renders command output. Every style is a no-op when the
// writer is not a terminal, so piped output stays plain.
type outputStyles struct {
	Title     lipgloss.Style
	Directory lipgloss.Style
	Link      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

func newOutputStyles(w io.Writer) outputStyles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return outputStyles{plain, plain, plain, plain, plain, plain}
	}
	return outputStyles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		Directory: lipgloss.NewStyle().Bold(true).Foreground(colourSecondary),
		Link:      lipgloss.NewStyle().Foreground(colourSecondary).Italic(true),
		Muted:     lipgloss.NewStyle().Foreground(colourMuted),
		Success:   lipgloss.NewStyle().Foreground(colourSuccess),
		Warning:   lipgloss.NewStyle().Foreground(colourWarning),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// entryName styles a listing entry by its type.
func (s outputStyles) entryName(e domain.DirEntry) string {
	switch {
	case e.Stat.Type == "l":
		name := s.Link.Render(e.Name)
		if e.Stat.SymlinkDest != nil {
			name += s.Muted.Render(" -> " + *e.Stat.SymlinkDest)
		}
		return name
	case e.IsDir():
		return s.Directory.Render(e.Name + "/")
	case e.Hidden:
		return s.Muted.Render(e.Name)
	default:
		return e.Name
	}
}

// humanSize renders a byte count like "4.0 KB".
func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return datasize.ByteSize(n).HumanReadable()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
