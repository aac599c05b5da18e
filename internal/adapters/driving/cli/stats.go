package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats [suite]",
	Short: "Show source package, file and disk usage figures",
	Long: `Show how many source packages and files the archive holds and how
much disk they use, per area. File and disk figures only cover versions
whose checksums were imported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "print the figures as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	var stats []domain.SuiteStats
	if len(args) == 1 {
		st, err := statsService.Suite(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), st)
		}
		stats = append(stats, *st)
	} else {
		archive, err := statsService.Archive(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), archive)
		}
		stats = append(archive.PerSuite, archive.Total)
	}

	styles := newOutputStyles(cmd.OutOrStdout())
	for _, st := range stats {
		name := st.Suite
		if name == "" {
			name = "total"
		}
		cmd.Println(styles.Title.Render(name))
		printCounts(cmd, "all", st.Total)

		areas := make([]string, 0, len(st.Areas))
		for area := range st.Areas {
			areas = append(areas, area)
		}
		sort.Strings(areas)
		for _, area := range areas {
			printCounts(cmd, area, st.Areas[area])
		}
	}
	return nil
}

func printCounts(cmd *cobra.Command, label string, c domain.StatsCounts) {
	cmd.Printf("  %-10s %6d packages %8d files %10s\n",
		label, c.SourcePackages, c.SourceFiles, humanSize(c.DiskUsage))
}
