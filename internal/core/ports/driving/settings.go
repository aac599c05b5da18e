package driving

import "github.com/custodia-labs/debsources/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the configured settings merged over the defaults.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set parses value according to key's type and persists it.
	Set(key, value string) error

	// Keys returns the known configuration keys, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
