package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

var copyrightCmd = &cobra.Command{
	Use:   "copyright <package> <version> [path]",
	Short: "Show the debian/copyright of a version",
	Long: `Show the Files and License paragraphs of a machine-readable
debian/copyright, or the license governing one file when a path is given.
The version "all" looks the path up in every version.

Examples:
  debsources copyright gnubg latest
  debsources copyright gnubg all src/board.c
  debsources copyright --sha256 <sum> --suite bookworm`,
	Args: cobra.RangeArgs(0, 3),
	RunE: runCopyright,
}

func init() {
	copyrightCmd.Flags().String("sha256", "", "license of the files with this checksum")
	copyrightCmd.Flags().String("package", "", "with --sha256, only files of this package")
	copyrightCmd.Flags().String("suite", "", `with --sha256, only versions in this suite or "latest"`)
	copyrightCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(copyrightCmd)
}

func runCopyright(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if sum, _ := cmd.Flags().GetString("sha256"); sum != "" {
		pkg, _ := cmd.Flags().GetString("package")
		suite, _ := cmd.Flags().GetString("suite")
		licenses, err := copyrightService.ChecksumLicenses(cmd.Context(), sum, pkg, suite)
		if err != nil {
			return err
		}
		return printFileLicenses(cmd, licenses, asJSON)
	}
	if len(args) < 2 {
		return cmd.Usage()
	}

	pkg, version := args[0], args[1]
	if !strings.EqualFold(version, domain.SuiteAll) {
		resolved, err := sourceService.ResolveVersion(cmd.Context(), pkg, version)
		if err != nil {
			return err
		}
		version = resolved
	}
	if len(args) == 3 {
		licenses, err := copyrightService.FileLicenses(cmd.Context(), pkg, version, args[2])
		if err != nil {
			return err
		}
		return printFileLicenses(cmd, licenses, asJSON)
	}

	view, err := copyrightService.License(cmd.Context(), pkg, version)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd.OutOrStdout(), view)
	}

	styles := newOutputStyles(cmd.OutOrStdout())
	cmd.Println(styles.Title.Render(pkg + " " + version))
	if !view.MachineReadable {
		cmd.Println(styles.Warning.Render("debian/copyright is not machine-readable"))
		cmd.Println(styles.Muted.Render(view.URL))
		return nil
	}
	for _, f := range view.Files {
		patterns := make([]string, 0, len(f.Globs))
		for _, g := range f.Globs {
			patterns = append(patterns, g.Pattern)
		}
		cmd.Printf("%s\n  %s\n", styles.Directory.Render(strings.Join(patterns, " ")), f.Synopsis)
		if holder, _, _ := strings.Cut(f.Copyright, "\n"); holder != "" {
			cmd.Println(styles.Muted.Render("  " + holder))
		}
	}
	for _, l := range view.Licenses {
		cmd.Printf("license %s %s\n", l.Synopsis, styles.Link.Render(l.Link))
	}
	return nil
}

func printFileLicenses(cmd *cobra.Command, licenses []domain.FileLicense, asJSON bool) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), licenses)
	}
	if len(licenses) == 0 {
		cmd.Println("No files found")
		return nil
	}
	for _, l := range licenses {
		license := "unknown"
		if l.License != nil {
			license = *l.License
		}
		cmd.Printf("%s/%s/%s: %s\n", l.Package, l.Version, l.Path, license)
	}
	return nil
}
