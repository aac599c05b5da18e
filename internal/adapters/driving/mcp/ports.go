package mcp

import (
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Source browses packages and their unpacked sources.
	Source driving.SourceService

	// Patches reads debian/patches series. The patch tools are only
	// registered when it is set.
	Patches driving.PatchService

	// Copyright reads debian/copyright files. The license tool is only
	// registered when it is set.
	Copyright driving.CopyrightService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
