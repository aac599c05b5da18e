package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil source service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Patches: &mockPatchService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSourceService)
	})

	t.Run("source only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Source: &mockSourceService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Source:    &mockSourceService{},
			Patches:   &mockPatchService{},
			Copyright: &mockCopyrightService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
