package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/adapters/driven/archive"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fill the metadata database",
	Long:  `Commands that record packages, suites and checksums in the metadata database.`,
}

var importSourcesCmd = &cobra.Command{
	Use:   "sources <Sources file>",
	Short: "Import a Debian Sources index",
	Long: `Record every package version of a Sources index (plain, .gz, .bz2 or
.xz) as published in a suite.

Example:
  debsources import sources --suite bookworm --area main \
      dists/bookworm/main/source/Sources.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runImportSources,
}

var importScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Record package versions found on the mirror",
	Args:  cobra.NoArgs,
	RunE:  runImportScan,
}

var importChecksumsCmd = &cobra.Command{
	Use:   "checksums [package] [version]",
	Short: "Compute file checksums",
	Long: `Hash the files of a package version. Without a version every version
of the package is hashed; without a package every known package is.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runImportChecksums,
}

func init() {
	importSourcesCmd.Flags().String("suite", "", "suite the index belongs to (required)")
	importSourcesCmd.Flags().String("area", "main", "archive area of the index")
	_ = importSourcesCmd.MarkFlagRequired("suite")
	importChecksumsCmd.Flags().Bool("force", false, "rehash versions that already have checksums")

	importCmd.AddCommand(importSourcesCmd, importScanCmd, importChecksumsCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportSources(cmd *cobra.Command, args []string) error {
	suite, _ := cmd.Flags().GetString("suite")
	area, _ := cmd.Flags().GetString("area")

	index, err := archive.OpenSources(args[0])
	if err != nil {
		return err
	}
	defer index.Close()

	stats, err := importService.ImportSources(cmd.Context(), index, suite, area)
	if err != nil {
		return err
	}
	printStats(cmd, stats)
	return nil
}

func runImportScan(cmd *cobra.Command, _ []string) error {
	stats, err := importService.ScanMirror(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd, stats)
	return nil
}

func runImportChecksums(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	var targets [][2]string
	switch len(args) {
	case 2:
		targets = append(targets, [2]string{args[0], args[1]})
	default:
		var names []string
		if len(args) == 1 {
			names = []string{args[0]}
		} else {
			all, err := sourceService.ListPackages(ctx, "")
			if err != nil {
				return err
			}
			for _, n := range all {
				names = append(names, n.Name)
			}
		}
		for _, name := range names {
			versions, err := sourceService.ListVersions(ctx, name, "")
			if err != nil {
				return err
			}
			for _, v := range versions {
				targets = append(targets, [2]string{name, v.Version})
			}
		}
	}

	total := 0
	for _, t := range targets {
		n, err := importService.ComputeChecksums(ctx, t[0], t[1], force)
		switch {
		case errors.Is(err, domain.ErrFileOrFolderNotFound) && len(targets) > 1:
			logger.Warn("skipping %s %s: not on the mirror", t[0], t[1])
			continue
		case err != nil:
			return fmt.Errorf("hashing %s %s: %w", t[0], t[1], err)
		}
		total += n
	}
	cmd.Printf("Hashed %d files in %d versions\n", total, len(targets))
	return nil
}

func printStats(cmd *cobra.Command, stats *domain.ImportStats) {
	s := newOutputStyles(cmd.OutOrStdout())
	cmd.Println(s.Success.Render(fmt.Sprintf("%d packages, %d versions, %d suite entries",
		stats.Packages, stats.Versions, stats.Suites)))
	if stats.Skipped > 0 {
		cmd.Println(s.Warning.Render(fmt.Sprintf("%d entries skipped", stats.Skipped)))
	}
}
