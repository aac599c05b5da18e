package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

var lsCmd = &cobra.Command{
	Use:   "ls <package> <version> [path]",
	Short: "List a directory or describe a file of a source package",
	Long: `Browse the unpacked sources of a package version.

The version may be "latest" or a suite name such as "unstable".

Examples:
  debsources ls gnubg latest
  debsources ls gnubg 1.02.000-2 debian/patches
  debsources ls --json gnubg latest README`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runLs,
}

var catCmd = &cobra.Command{
	Use:   "cat <package> <version> <path>",
	Short: "Print a source file with line numbers",
	Args:  cobra.ExactArgs(3),
	RunE:  runCat,
}

func init() {
	lsCmd.Flags().BoolP("all", "a", false, "show hidden entries")
	lsCmd.Flags().Bool("json", false, "print the raw result as JSON")
	catCmd.Flags().String("hl", "", "lines to highlight, e.g. 3,10:12")
	rootCmd.AddCommand(lsCmd, catCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	pkg, path := args[0], ""
	if len(args) == 3 {
		path = args[2]
	}

	ver, err := sourceService.ResolveVersion(cmd.Context(), pkg, args[1])
	if err != nil {
		return err
	}
	result, err := sourceService.Browse(cmd.Context(), pkg, ver, path)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}

	all, _ := cmd.Flags().GetBool("all")
	out := cmd.OutOrStdout()
	s := newOutputStyles(out)

	fmt.Fprintln(out, s.Title.Render(result.Path))
	switch result.Kind {
	case domain.BrowseRedirect:
		fmt.Fprintf(out, "symlink to %s\n", s.Link.Render(result.RedirectTo))
	case domain.BrowseDirectory:
		printListing(out, s, result.Directory.Content, all)
	case domain.BrowseFile:
		printFileInfo(out, s, result.File)
	}
	return nil
}

func printListing(out io.Writer, s outputStyles, entries []domain.DirEntry, all bool) {
	for _, e := range entries {
		if e.Hidden && !all {
			continue
		}
		fmt.Fprintf(out, "%s%s %10s  %s\n", e.Stat.Type, e.Stat.Perms, humanSize(e.Stat.Size), s.entryName(e))
	}
}

func printFileInfo(out io.Writer, s outputStyles, f *domain.FileInfo) {
	fmt.Fprintf(out, "%-12s %s\n", "mime:", f.MIME.Type)
	if f.MIME.Encoding != "" {
		fmt.Fprintf(out, "%-12s %s\n", "encoding:", f.MIME.Encoding)
	}
	fmt.Fprintf(out, "%-12s %s\n", "size:", humanSize(f.Stat.Size))
	fmt.Fprintf(out, "%-12s %s\n", "raw:", f.RawURL)
	if f.Checksum != "" {
		fmt.Fprintf(out, "%-12s %s %s\n", "sha256:", f.Checksum,
			s.Muted.Render(fmt.Sprintf("(%d duplicates)", f.NumberOfDuplicates)))
	}
	if !f.TextFile {
		fmt.Fprintln(out, s.Warning.Render("binary file"))
	}
}

func runCat(cmd *cobra.Command, args []string) error {
	pkg := args[0]
	ver, err := sourceService.ResolveVersion(cmd.Context(), pkg, args[1])
	if err != nil {
		return err
	}

	hl, _ := cmd.Flags().GetString("hl")
	view, err := sourceService.Code(cmd.Context(), pkg, ver, args[2], domain.CodeOptions{Highlight: hl})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := newOutputStyles(out)
	width := len(fmt.Sprint(view.NumberOfLines))
	for _, line := range view.Lines {
		number := fmt.Sprintf("%*d", width, line.Number)
		text := strings.TrimRight(line.Text, "\n")
		if line.Highlighted {
			fmt.Fprintf(out, "%s %s\n", s.Warning.Render(number), s.Warning.Render(text))
			continue
		}
		fmt.Fprintf(out, "%s %s\n", s.Muted.Render(number), text)
	}
	return nil
}
