// Package cli implements the debsources command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/adapters/driven/config/file"
	"github.com/custodia-labs/debsources/internal/adapters/driven/mirror"
	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
	"github.com/custodia-labs/debsources/internal/core/services"
	"github.com/custodia-labs/debsources/internal/logger"
	"github.com/custodia-labs/debsources/internal/navigation"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// annotationNeeds tells initServices how much a command needs wired.
// Commands without it get the full service graph.
const (
	annotationNeeds = "needs"
	needsNothing    = "nothing"
	needsConfig     = "config"
)

var (
	verbose    bool
	configPath string

	settingsService  driving.SettingsService
	sourceService    driving.SourceService
	patchService     driving.PatchService
	checksumService  driving.ChecksumService
	importService    driving.ImportService
	copyrightService driving.CopyrightService
	statsService     driving.StatsService

	// currentSettings and areaCache are set by wire.
	currentSettings *domain.Settings
	areaCache       *mirror.AreaCache

	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "debsources",
	Short: "Browse the unpacked sources of a Debian mirror",
	Long: `debsources serves the unpacked source packages of a Debian mirror:
directory listings, source files, quilt patch series and checksum lookups,
over a JSON HTTP API, an MCP server or the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.debsources/config.toml)")
}

// Execute runs the root command and releases opened stores.
func Execute(ctx context.Context) error {
	defer func() {
		if err := closeServices(); err != nil {
			logger.Error("closing: %v", err)
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// initServices loads the settings and wires the services a command needs.
// Already wired services are kept.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	needs := cmd.Annotations[annotationNeeds]
	if needs == needsNothing || isBuiltin(cmd) {
		return nil
	}
	if settingsService == nil {
		store, err := openConfigStore()
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		settingsService = services.NewSettingsService(store)
	}
	if needs == needsConfig || sourceService != nil {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	return wire(settings)
}

// isBuiltin reports whether cmd is one of cobra's help or completion
// commands.
func isBuiltin(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

func openConfigStore() (*file.ConfigStore, error) {
	if configPath != "" {
		return file.NewConfigStoreAt(configPath)
	}
	return file.NewConfigStore("")
}

// wire opens the metadata database and builds the services over it.
func wire(settings *domain.Settings) error {
	logger.Section("Setup")

	store, err := sqlite.NewStore(settings.StorageDir)
	if err != nil {
		return fmt.Errorf("opening metadata database: %w", err)
	}
	logger.Debug("metadata database %s", store.Path())

	cache := mirror.NewAreaCache(settings.SourcesDir)
	closers = append(closers, cache.Close, store.Close)

	packages, checksums := store.PackageStore(), store.ChecksumStore()
	locator := navigation.NewLocator(packages, cache, settings.SourcesDir, settings.SourcesStatic)

	currentSettings = settings
	areaCache = cache
	sourceService = services.NewSourceService(packages, checksums, locator, settings.HiddenFiles)
	patchService = services.NewPatchService(packages, locator)
	checksumService = services.NewChecksumService(checksums)
	importService = services.NewImportService(packages, checksums, locator)
	copyrightService = services.NewCopyrightService(packages, checksums, locator)
	statsService = services.NewStatsService(packages, store.StatsStore())
	return nil
}

func closeServices() error {
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		err = errors.Join(err, closers[i]())
	}
	closers = nil
	return err
}
