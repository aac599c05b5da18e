package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <package> <version>",
	Short: "Show the metadata of a package version",
	Args:  cobra.ExactArgs(2),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ver, err := sourceService.ResolveVersion(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	info, err := sourceService.Info(cmd.Context(), args[0], ver)
	if err != nil {
		return err
	}

	cmd.Printf("%-8s %s\n", "package:", info.Package)
	cmd.Printf("%-8s %s\n", "version:", info.Version)
	cmd.Printf("%-8s %s\n", "area:", info.Area)
	cmd.Printf("%-8s %s\n", "suites:", strings.Join(info.Suites, ", "))
	if info.VcsBrowser != "" {
		cmd.Printf("%-8s %s (%s)\n", "vcs:", info.VcsBrowser, info.VcsType)
	}
	cmd.Printf("%-8s %s\n", "pts:", info.PTSLink)
	return nil
}
