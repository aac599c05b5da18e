package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/debsources/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
	assert.Equal(t, *settings, service.GetDefaults())
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/data", settings.SourcesStatic)

	assert.ErrorIs(t, service.Save(settings), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Set(KeyServerAddr, ":80"), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		KeySourcesDir:   "/mirror",
		KeyHiddenFiles:  []any{"*/.git/"},
		KeyRateLimit:    int64(5),
		KeyBurst:        int64(10),
		KeyMirrorWatch:  true,
		KeyServerAddr:   "",
		"unrelated.key": "ignored",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/mirror", settings.SourcesDir)
	assert.Equal(t, "/data", settings.SourcesStatic)
	assert.Equal(t, []string{"*/.git/"}, settings.HiddenFiles)
	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.InDelta(t, 5.0, settings.Server.RateLimit, 0.001)
	assert.Equal(t, 10, settings.Server.Burst)
	assert.True(t, settings.Mirror.Watch)
}

func TestSettingsService_Get_Invalid(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{KeyBurst: -1})

	_, err := NewSettingsService(store).Get()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultSettings()
	settings.SourcesDir = "/srv/mirror"
	settings.Server.Burst = 3
	settings.Mirror.Watch = true
	require.NoError(t, service.Save(settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	settings.SourcesDir = ""
	assert.ErrorIs(t, service.Save(settings), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyHiddenFiles, "*/.pc/, */.git/ ,"))
	require.NoError(t, service.Set(KeyRateLimit, "2.5"))
	require.NoError(t, service.Set(KeyBurst, "7"))
	require.NoError(t, service.Set(KeyMirrorWatch, "true"))
	require.NoError(t, service.Set(KeySourcesStatic, "/static"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"*/.pc/", "*/.git/"}, settings.HiddenFiles)
	assert.InDelta(t, 2.5, settings.Server.RateLimit, 0.001)
	assert.Equal(t, 7, settings.Server.Burst)
	assert.True(t, settings.Mirror.Watch)
	assert.Equal(t, "/static", settings.SourcesStatic)

	tests := []struct {
		key, value string
	}{
		{"search.mode", "hybrid"},
		{KeyBurst, "many"},
		{KeyRateLimit, "fast"},
		{KeyMirrorWatch, "sometimes"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput, tt.key)
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(nil).Keys()
	assert.Len(t, keys, 8)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, KeyMirrorWatch)
}
