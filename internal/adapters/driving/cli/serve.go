package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/debsources/internal/adapters/driving/web"
	"github.com/custodia-labs/debsources/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve the JSON API and the raw mirror files over HTTP.

Examples:
  debsources serve
  debsources serve --addr 127.0.0.1:9000 --rate-limit 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().Float64("rate-limit", -1, "requests per second per client, 0 disables (overrides server.rate_limit)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings := currentSettings
	if settings == nil {
		return fmt.Errorf("settings not loaded")
	}

	cfg := web.Config{
		Addr:          settings.Server.Addr,
		SourcesDir:    settings.SourcesDir,
		SourcesStatic: settings.SourcesStatic,
		RateLimit:     settings.Server.RateLimit,
		Burst:         settings.Server.Burst,
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if rps, _ := cmd.Flags().GetFloat64("rate-limit"); rps >= 0 {
		cfg.RateLimit = rps
	}

	if settings.Mirror.Watch && areaCache != nil {
		if err := areaCache.Watch(cmd.Context()); err != nil {
			logger.Warn("mirror watch disabled: %v", err)
		}
	}

	server, err := web.NewServer(&web.Ports{
		Source:    sourceService,
		Patches:   patchService,
		Checksums: checksumService,
		Copyright: copyrightService,
		Stats:     statsService,
	}, cfg)
	if err != nil {
		return err
	}

	cmd.Printf("Serving %s on %s\n", settings.SourcesDir, cfg.Addr)
	return server.Run(cmd.Context())
}
