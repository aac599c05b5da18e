package cli

import (
	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <sha256>",
	Short: "Find files by sha256",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecksum,
}

func init() {
	checksumCmd.Flags().String("package", "", "only files of this package")
	rootCmd.AddCommand(checksumCmd)
}

func runChecksum(cmd *cobra.Command, args []string) error {
	pkg, _ := cmd.Flags().GetString("package")
	matches, err := checksumService.Search(cmd.Context(), args[0], pkg)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		cmd.Println("No files found")
		return nil
	}
	for _, m := range matches {
		cmd.Printf("%s/%s/%s\n", m.Package, m.Version, m.Path)
	}
	return nil
}
