package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

func TestExtractPackage(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid package URI", uri: "debsources://packages/gnubg", expected: "gnubg"},
		{name: "invalid prefix", uri: "file://packages/gnubg", expected: ""},
		{name: "nested path", uri: "debsources://packages/gnubg/1.0", expected: ""},
		{name: "dot dot", uri: "debsources://packages/..", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPackage(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handlePackagesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists names", func(t *testing.T) {
		source := &mockSourceService{names: []domain.PackageName{{Name: "gnubg"}, {Name: "libcaca"}}}
		server := newTestServer(t, source, nil)

		result, err := server.handlePackagesResource(ctx, makeReadResourceRequest("debsources://packages"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.JSONEq(t, `["gnubg","libcaca"]`, result.Contents[0].Text)
	})

	t.Run("empty store gives empty list", func(t *testing.T) {
		server := newTestServer(t, &mockSourceService{}, nil)

		result, err := server.handlePackagesResource(ctx, makeReadResourceRequest("debsources://packages"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &mockSourceService{err: errors.New("database error")}, nil)

		_, err := server.handlePackagesResource(ctx, makeReadResourceRequest("debsources://packages"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing packages")
	})
}

func TestServer_handlePackageResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists versions", func(t *testing.T) {
		source := &mockSourceService{versions: []domain.VersionInfo{
			{Version: "1.02.000-2", Area: "main", Suites: []string{"jessie"}},
		}}
		server := newTestServer(t, source, nil)

		result, err := server.handlePackageResource(ctx, makeReadResourceRequest("debsources://packages/gnubg"))
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"version": "1.02.000-2"`)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("unknown package is not found", func(t *testing.T) {
		server := newTestServer(t, &mockSourceService{err: domain.ErrNotFound}, nil)

		_, err := server.handlePackageResource(ctx, makeReadResourceRequest("debsources://packages/nope"))
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "listing versions")
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		server := newTestServer(t, &mockSourceService{}, nil)

		_, err := server.handlePackageResource(ctx, makeReadResourceRequest("debsources://invalid/uri"))
		require.Error(t, err)
	})
}
