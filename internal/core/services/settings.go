package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
)

var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySourcesDir    = "sources.dir"
	KeySourcesStatic = "sources.static"
	KeyStorageDir    = "storage.dir"
	KeyHiddenFiles   = "webapp.hidden_files"
	KeyServerAddr    = "server.addr"
	KeyRateLimit     = "server.rate_limit"
	KeyBurst         = "server.burst"
	KeyMirrorWatch   = "mirror.watch"
)

type keyKind int

const (
	kindString keyKind = iota
	kindStrings
	kindFloat
	kindInt
	kindBool
)

var keyKinds = map[string]keyKind{
	KeySourcesDir:    kindString,
	KeySourcesStatic: kindString,
	KeyStorageDir:    kindString,
	KeyHiddenFiles:   kindStrings,
	KeyServerAddr:    kindString,
	KeyRateLimit:     kindFloat,
	KeyBurst:         kindInt,
	KeyMirrorWatch:   kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings merged over the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return settings, nil
	}

	settings.SourcesDir = s.getString(KeySourcesDir, settings.SourcesDir)
	settings.SourcesStatic = s.getString(KeySourcesStatic, settings.SourcesStatic)
	settings.StorageDir = s.getString(KeyStorageDir, settings.StorageDir)
	settings.Server.Addr = s.getString(KeyServerAddr, settings.Server.Addr)
	if _, ok := s.configStore.Get(KeyHiddenFiles); ok {
		settings.HiddenFiles = s.configStore.GetStringSlice(KeyHiddenFiles)
	}
	if _, ok := s.configStore.Get(KeyRateLimit); ok {
		settings.Server.RateLimit = s.configStore.GetFloat(KeyRateLimit)
	}
	if _, ok := s.configStore.Get(KeyBurst); ok {
		settings.Server.Burst = s.configStore.GetInt(KeyBurst)
	}
	settings.Mirror.Watch = s.configStore.GetBool(KeyMirrorWatch)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeySourcesDir:    settings.SourcesDir,
		KeySourcesStatic: settings.SourcesStatic,
		KeyStorageDir:    settings.StorageDir,
		KeyHiddenFiles:   settings.HiddenFiles,
		KeyServerAddr:    settings.Server.Addr,
		KeyRateLimit:     settings.Server.RateLimit,
		KeyBurst:         settings.Server.Burst,
		KeyMirrorWatch:   settings.Mirror.Watch,
	}
	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value according to key's type and persists it. Lists are
// comma separated.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = value
	case kindStrings:
		var list []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		parsed = list
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		parsed = f
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		parsed = b
	}
	return s.configStore.Set(key, parsed)
}

// Keys returns the known configuration keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return *domain.DefaultSettings()
}
