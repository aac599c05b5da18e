package domain

import "fmt"

// Settings holds the runtime configuration of the service.
type Settings struct {
	// SourcesDir is the root of the unpacked source mirror.
	SourcesDir string
	// SourcesStatic is the URL prefix the mirror is served under.
	SourcesStatic string
	// StorageDir holds the metadata database.
	StorageDir string
	// HiddenFiles are fnmatch patterns matched against listed paths.
	HiddenFiles []string
	Server      ServerSettings
	Mirror      MirrorSettings
}

// ServerSettings configures the HTTP front-end.
type ServerSettings struct {
	Addr string
	// RateLimit is the sustained number of requests per second per client.
	RateLimit float64
	Burst     int
}

// MirrorSettings configures mirror monitoring.
type MirrorSettings struct {
	// Watch enables filesystem notifications on the mirror.
	Watch bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		SourcesDir:    "/srv/debsources/sources",
		SourcesStatic: "/data",
		HiddenFiles:   []string{"*/*.pc/"},
		Server: ServerSettings{
			Addr:      ":8080",
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.SourcesDir == "" {
		return fmt.Errorf("%w: sources directory is empty", ErrInvalidInput)
	}
	if s.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	if s.Server.Burst < 0 {
		return fmt.Errorf("%w: burst must not be negative", ErrInvalidInput)
	}
	return nil
}
