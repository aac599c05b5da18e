package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var patchesCmd = &cobra.Command{
	Use:   "patches <package> [version] [patch]",
	Short: "Show the quilt patch series of a package",
	Long: `Without a version, list the versions of a package with their series
sizes. With a version, summarise its series. With a patch name, show
that patch's header and diffstat.

Examples:
  debsources patches gnubg
  debsources patches gnubg latest
  debsources patches gnubg 1.02.000-2 01-fix.patch`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runPatches,
}

func init() {
	patchesCmd.Flags().String("suite", "", "only versions in this suite")
	patchesCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(patchesCmd)
}

func runPatches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	s := newOutputStyles(cmd.OutOrStdout())
	pkg := args[0]

	if len(args) == 1 {
		suite, _ := cmd.Flags().GetString("suite")
		versions, err := patchService.ListVersions(ctx, pkg, suite)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), versions)
		}
		for _, v := range versions.Versions {
			series := s.Muted.Render("unsupported format")
			if v.Supported {
				series = fmt.Sprintf("%d patches", v.Series)
			}
			cmd.Printf("%-24s %s\n", v.Version, series)
		}
		return nil
	}

	ver, err := sourceService.ResolveVersion(ctx, pkg, args[1])
	if err != nil {
		return err
	}

	if len(args) == 3 {
		detail, err := patchService.Patch(ctx, pkg, ver, args[2])
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), detail)
		}
		cmd.Println(s.Title.Render(detail.Name))
		cmd.Println(strings.TrimSpace(detail.Description))
		if detail.Bug != "" {
			cmd.Printf("Bug: %s\n", detail.Bug)
		}
		cmd.Println()
		cmd.Print(detail.FileDeltas)
		return nil
	}

	summary, err := patchService.Summary(ctx, pkg, ver)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	cmd.Printf("%s %s: format %s\n", summary.Package, summary.Version, summary.Format)
	if !summary.Supported {
		cmd.Println(s.Warning.Render("patch series not supported for this format"))
		return nil
	}
	for _, p := range summary.Patches {
		name := p.Name
		if !p.Exists {
			name = s.Warning.Render(name)
		}
		cmd.Printf("%s\n  %s\n", name, s.Muted.Render(strings.TrimSpace(p.Description)))
	}
	return nil
}
