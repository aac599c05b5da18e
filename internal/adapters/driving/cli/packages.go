package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known source packages",
	Long: `List source package names, optionally restricted to a suite or a
pool prefix such as "g" or "libx".

Examples:
  debsources list --suite bookworm
  debsources list --prefix libx`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search package names",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var versionsCmd = &cobra.Command{
	Use:   "versions <package>",
	Short: "List the versions of a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

func init() {
	listCmd.Flags().String("suite", "", "only packages in this suite")
	listCmd.Flags().String("prefix", "", "only packages under this pool prefix")
	listCmd.Flags().Bool("prefixes", false, "list the pool prefixes instead")
	searchCmd.Flags().String("suite", "", "only packages in this suite")
	versionsCmd.Flags().String("suite", "", "only versions in this suite")
	versionsCmd.Flags().Bool("json", false, "print the listing as JSON")
	rootCmd.AddCommand(listCmd, searchCmd, versionsCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	suite, _ := cmd.Flags().GetString("suite")
	prefix, _ := cmd.Flags().GetString("prefix")

	if only, _ := cmd.Flags().GetBool("prefixes"); only {
		prefixes, err := sourceService.Prefixes(cmd.Context(), suite)
		if err != nil {
			return err
		}
		cmd.Println(strings.Join(prefixes, " "))
		return nil
	}

	list := sourceService.ListPackages
	if prefix != "" {
		list = func(ctx context.Context, suite string) ([]domain.PackageName, error) {
			return sourceService.PackagesByPrefix(ctx, prefix, suite)
		}
	}
	names, err := list(cmd.Context(), suite)
	if err != nil {
		return err
	}
	for _, n := range names {
		cmd.Println(n.Name)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	suite, _ := cmd.Flags().GetString("suite")
	result, err := sourceService.Search(cmd.Context(), args[0], suite)
	if err != nil {
		return err
	}

	if result.Empty() {
		cmd.Printf("No packages matching %q\n", args[0])
		return nil
	}
	s := newOutputStyles(cmd.OutOrStdout())
	if result.Exact != nil {
		cmd.Println(s.Success.Render(result.Exact.Name) + s.Muted.Render(" (exact)"))
	}
	for _, n := range result.Other {
		cmd.Println(n.Name)
	}
	return nil
}

func runVersions(cmd *cobra.Command, args []string) error {
	suite, _ := cmd.Flags().GetString("suite")
	versions, err := sourceService.ListVersions(cmd.Context(), args[0], suite)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd.OutOrStdout(), versions)
	}

	s := newOutputStyles(cmd.OutOrStdout())
	for _, v := range versions {
		cmd.Println(fmt.Sprintf("%-24s %-9s %s", v.Version, v.Area, s.Muted.Render(strings.Join(v.Suites, ", "))))
	}
	return nil
}
