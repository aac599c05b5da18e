package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// ListVersionsInput is the input schema for the list_versions tool.
type ListVersionsInput struct {
	Package string `json:"package" jsonschema:"source package name, e.g. gnubg"`
	Suite   string `json:"suite,omitempty" jsonschema:"restrict to a suite such as sid or bookworm"`
}

// ListVersionsOutput is the output schema for the list_versions tool.
type ListVersionsOutput struct {
	Package  string               `json:"package"`
	Versions []domain.VersionInfo `json:"versions"`
}

// BrowseInput is the input schema for the browse tool.
type BrowseInput struct {
	Package string `json:"package" jsonschema:"source package name"`
	Version string `json:"version" jsonschema:"package version, a suite name or latest"`
	Path    string `json:"path,omitempty" jsonschema:"path inside the unpacked sources; empty for the top directory"`
}

// BrowseOutput is the output schema for the browse tool. Content is only
// set for text files.
type BrowseOutput struct {
	Result  *domain.BrowseResult `json:"result"`
	Content string               `json:"content,omitempty"`
}

// PatchSeriesInput is the input schema for the patch_series tool.
type PatchSeriesInput struct {
	Package string `json:"package" jsonschema:"source package name"`
	Version string `json:"version" jsonschema:"package version, a suite name or latest"`
}

// PatchInput is the input schema for the patch tool.
type PatchInput struct {
	Package string `json:"package" jsonschema:"source package name"`
	Version string `json:"version" jsonschema:"package version, a suite name or latest"`
	Name    string `json:"name" jsonschema:"patch name as listed in debian/patches/series"`
}

// LicenseInput is the input schema for the license tool.
type LicenseInput struct {
	Package string `json:"package" jsonschema:"source package name"`
	Version string `json:"version" jsonschema:"package version, a suite name, latest, or all together with path"`
	Path    string `json:"path,omitempty" jsonschema:"file whose license is wanted; empty for the whole copyright file"`
}

// LicenseOutput is the output schema for the license tool. Copyright is
// set without a path, Files with one.
type LicenseOutput struct {
	Copyright *domain.CopyrightView `json:"copyright,omitempty"`
	Files     []domain.FileLicense  `json:"files,omitempty"`
}

// maxContentLines caps the file text returned by browse.
const maxContentLines = 2000

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_versions",
		Description: "List the known versions of a Debian source package with their suites",
	}, s.handleListVersions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "browse",
		Description: "List a directory or read a text file inside an unpacked Debian source package",
	}, s.handleBrowse)

	if s.ports.Patches != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "patch_series",
			Description: "Describe the debian/patches quilt series of a package version",
		}, s.handlePatchSeries)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "patch",
			Description: "Show the description, bug and diffstat of one patch",
		}, s.handlePatch)
	}

	if s.ports.Copyright != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "license",
			Description: "Read the debian/copyright of a package version, or the license governing one file",
		}, s.handleLicense)
	}
}

func (s *Server) handleListVersions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListVersionsInput,
) (*mcp.CallToolResult, ListVersionsOutput, error) {
	versions, err := s.ports.Source.ListVersions(ctx, input.Package, input.Suite)
	if err != nil {
		return nil, ListVersionsOutput{}, err
	}
	if versions == nil {
		versions = []domain.VersionInfo{}
	}
	return nil, ListVersionsOutput{Package: input.Package, Versions: versions}, nil
}

func (s *Server) handleBrowse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BrowseInput,
) (*mcp.CallToolResult, BrowseOutput, error) {
	version, err := s.ports.Source.ResolveVersion(ctx, input.Package, input.Version)
	if err != nil {
		return nil, BrowseOutput{}, err
	}

	res, err := s.ports.Source.Browse(ctx, input.Package, version, input.Path)
	if err != nil {
		return nil, BrowseOutput{}, err
	}
	out := BrowseOutput{Result: res}
	if res.Kind != domain.BrowseFile || res.File == nil || !res.File.TextFile {
		return nil, out, nil
	}

	view, err := s.ports.Source.Code(ctx, input.Package, version, input.Path, domain.CodeOptions{})
	if err != nil {
		return nil, BrowseOutput{}, fmt.Errorf("reading %s: %w", res.Path, err)
	}
	out.Content = joinLines(view.Lines, maxContentLines)
	return nil, out, nil
}

func (s *Server) handlePatchSeries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PatchSeriesInput,
) (*mcp.CallToolResult, domain.PatchSummary, error) {
	version, err := s.ports.Source.ResolveVersion(ctx, input.Package, input.Version)
	if err != nil {
		return nil, domain.PatchSummary{}, err
	}
	summary, err := s.ports.Patches.Summary(ctx, input.Package, version)
	if err != nil {
		return nil, domain.PatchSummary{}, err
	}
	return nil, *summary, nil
}

func (s *Server) handlePatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PatchInput,
) (*mcp.CallToolResult, domain.PatchDetail, error) {
	version, err := s.ports.Source.ResolveVersion(ctx, input.Package, input.Version)
	if err != nil {
		return nil, domain.PatchDetail{}, err
	}
	detail, err := s.ports.Patches.Patch(ctx, input.Package, version, input.Name)
	if err != nil {
		return nil, domain.PatchDetail{}, err
	}
	return nil, *detail, nil
}

func (s *Server) handleLicense(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LicenseInput,
) (*mcp.CallToolResult, LicenseOutput, error) {
	version := input.Version
	if input.Path == "" || !strings.EqualFold(version, domain.SuiteAll) {
		resolved, err := s.ports.Source.ResolveVersion(ctx, input.Package, version)
		if err != nil {
			return nil, LicenseOutput{}, err
		}
		version = resolved
	}

	if input.Path != "" {
		files, err := s.ports.Copyright.FileLicenses(ctx, input.Package, version, input.Path)
		if err != nil {
			return nil, LicenseOutput{}, err
		}
		return nil, LicenseOutput{Files: files}, nil
	}
	view, err := s.ports.Copyright.License(ctx, input.Package, version)
	if err != nil {
		return nil, LicenseOutput{}, err
	}
	return nil, LicenseOutput{Copyright: view}, nil
}

// joinLines renders at most limit lines, noting how many were dropped.
func joinLines(lines []domain.CodeLine, limit int) string {
	n := min(len(lines), limit)
	size := 0
	for _, l := range lines[:n] {
		size += len(l.Text) + 1
	}
	buf := make([]byte, 0, size+64)
	for _, l := range lines[:n] {
		buf = append(buf, l.Text...)
		buf = append(buf, '\n')
	}
	if dropped := len(lines) - n; dropped > 0 {
		buf = fmt.Appendf(buf, "[... %d more lines]\n", dropped)
	}
	return string(buf)
}
