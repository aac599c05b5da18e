package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change settings",
	Long:        `Without a subcommand, print every setting with its effective value.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsConfig},
	RunE:        runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:         "get <key>",
	Short:       "Print one setting",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNeeds: needsConfig},
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and write the config file. List values such as
webapp.hidden_files are comma separated.

Example:
  debsources config set sources.dir /srv/mirror/sources`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNeeds: needsConfig},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	values := settingValues(settings)
	for _, key := range settingsService.Keys() {
		cmd.Printf("%s = %s\n", key, values[key])
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	value, ok := settingValues(settings)[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

func settingValues(s *domain.Settings) map[string]string {
	return map[string]string{
		services.KeySourcesDir:    s.SourcesDir,
		services.KeySourcesStatic: s.SourcesStatic,
		services.KeyStorageDir:    s.StorageDir,
		services.KeyHiddenFiles:   strings.Join(s.HiddenFiles, ","),
		services.KeyServerAddr:    s.Server.Addr,
		services.KeyRateLimit:     strconv.FormatFloat(s.Server.RateLimit, 'g', -1, 64),
		services.KeyBurst:         strconv.Itoa(s.Server.Burst),
		services.KeyMirrorWatch:   strconv.FormatBool(s.Mirror.Watch),
	}
}
