package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for debsources resources.
	uriScheme = "debsources://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "packages",
		Name:        "packages",
		Description: "Names of all known source packages",
		MIMEType:    "application/json",
	}, s.handlePackagesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "packages/{package}",
		Name:        "package-versions",
		Description: "Versions of a source package and the suites they are in",
		MIMEType:    "application/json",
	}, s.handlePackageResource)
}

// handlePackagesResource lists every package name.
func (s *Server) handlePackagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.Source.ListPackages(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}

	list := make([]string, len(names))
	for i := range names {
		list[i] = names[i].Name
	}
	return jsonResource(req.Params.URI, list)
}

// handlePackageResource lists the versions of one package.
func (s *Server) handlePackageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	pkg := extractPackage(req.Params.URI)
	if pkg == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	versions, err := s.ports.Source.ListVersions(ctx, pkg, "")
	if domain.IsNotFound(err) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	if versions == nil {
		versions = []domain.VersionInfo{}
	}
	return jsonResource(req.Params.URI, versions)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPackage extracts the name from a URI like debsources://packages/{package}.
func extractPackage(uri string) string {
	const prefix = uriScheme + "packages/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name := strings.TrimPrefix(uri, prefix)
	if !domain.ValidName(name) {
		return ""
	}
	return name
}
