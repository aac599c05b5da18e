package web

import (
	"errors"

	"github.com/custodia-labs/debsources/internal/core/ports/driving"
)

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("web: source service is required")

// Ports aggregates the driving ports the HTTP API needs.
type Ports struct {
	Source driving.SourceService

	// Patches serves /patches/api/. Optional.
	Patches driving.PatchService

	// Checksums serves /api/sha256/. Optional.
	Checksums driving.ChecksumService

	// Copyright serves /copyright/api/. Optional.
	Copyright driving.CopyrightService

	// Stats serves /api/stats/. Optional.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
