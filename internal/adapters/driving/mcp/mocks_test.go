package mcp

import (
	"context"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	names    []domain.PackageName
	versions []domain.VersionInfo
	resolved string
	browse   *domain.BrowseResult
	code     *domain.CodeView
	err      error

	// browsed records the version Browse was called with.
	browsed string
}

func (m *mockSourceService) ListPackages(_ context.Context, _ string) ([]domain.PackageName, error) {
	return m.names, m.err
}

func (m *mockSourceService) PackagesByPrefix(_ context.Context, _, _ string) ([]domain.PackageName, error) {
	return m.names, m.err
}

func (m *mockSourceService) Prefixes(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockSourceService) Search(_ context.Context, query, _ string) (*domain.SearchResult, error) {
	return &domain.SearchResult{Query: query}, m.err
}

func (m *mockSourceService) ListVersions(_ context.Context, _, _ string) ([]domain.VersionInfo, error) {
	return m.versions, m.err
}

func (m *mockSourceService) ResolveVersion(_ context.Context, _, version string) (string, error) {
	if m.resolved != "" {
		return m.resolved, nil
	}
	return version, nil
}

func (m *mockSourceService) Browse(_ context.Context, _, version, _ string) (*domain.BrowseResult, error) {
	m.browsed = version
	return m.browse, m.err
}

func (m *mockSourceService) Code(
	_ context.Context,
	_, _, _ string,
	_ domain.CodeOptions,
) (*domain.CodeView, error) {
	return m.code, m.err
}

func (m *mockSourceService) Suggest(_ context.Context, _, _, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockSourceService) Info(_ context.Context, _, _ string) (*domain.PackageInfo, error) {
	return nil, m.err
}

// mockPatchService is a mock implementation of driving.PatchService.
type mockPatchService struct {
	summary *domain.PatchSummary
	detail  *domain.PatchDetail
	err     error
}

func (m *mockPatchService) ListVersions(_ context.Context, _, _ string) (*domain.PatchVersions, error) {
	return nil, m.err
}

func (m *mockPatchService) Summary(_ context.Context, _, _ string) (*domain.PatchSummary, error) {
	return m.summary, m.err
}

func (m *mockPatchService) Patch(_ context.Context, _, _, _ string) (*domain.PatchDetail, error) {
	return m.detail, m.err
}

// mockCopyrightService is a mock implementation of driving.CopyrightService.
// It records the version it was last asked about.
type mockCopyrightService struct {
	view    *domain.CopyrightView
	files   []domain.FileLicense
	err     error
	version string
}

func (m *mockCopyrightService) License(_ context.Context, _, version string) (*domain.CopyrightView, error) {
	m.version = version
	return m.view, m.err
}

func (m *mockCopyrightService) FileLicenses(_ context.Context, _, version, _ string) ([]domain.FileLicense, error) {
	m.version = version
	return m.files, m.err
}

func (m *mockCopyrightService) ChecksumLicenses(_ context.Context, _, _, _ string) ([]domain.FileLicense, error) {
	return m.files, m.err
}
