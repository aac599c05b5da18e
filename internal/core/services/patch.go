package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
	"github.com/custodia-labs/debsources/internal/logger"
	"github.com/custodia-labs/debsources/internal/navigation"
	"github.com/custodia-labs/debsources/internal/patches"
)

var _ driving.PatchService = (*PatchService)(nil)

var patchLog = logger.Named("patches")

// PatchService inspects debian/patches series.
type PatchService struct {
	packages driven.PackageStore
	locator  *navigation.Locator
}

// NewPatchService creates a patch service.
func NewPatchService(packages driven.PackageStore, locator *navigation.Locator) *PatchService {
	return &PatchService{packages: packages, locator: locator}
}

// readFormat returns the stripped content of debian/source/format.
func (s *PatchService) readFormat(ctx context.Context, pkg, version string) (string, error) {
	loc, err := s.locator.Locate(ctx, pkg, version, patches.FormatPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(loc.SourcesPath)
	if err != nil {
		return "", fmt.Errorf("reading source format: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readSeries parses debian/patches/series.
func (s *PatchService) readSeries(ctx context.Context, pkg, version string) ([]patches.SeriesEntry, error) {
	loc, err := s.locator.Locate(ctx, pkg, version, patches.SeriesPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(loc.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("reading series: %w", err)
	}
	return patches.ParseSeries(bytes.NewReader(data))
}

// ListVersions returns a package's versions, newest first.
func (s *PatchService) ListVersions(ctx context.Context, pkg, suite string) (*domain.PatchVersions, error) {
	if s.packages == nil || s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	versions, err := listVersions(ctx, s.packages, pkg, suite)
	if err != nil {
		return nil, err
	}

	result := &domain.PatchVersions{Package: pkg, Versions: make([]domain.PatchVersion, 0, len(versions))}
	for i := len(versions) - 1; i >= 0; i-- {
		pv := domain.PatchVersion{VersionInfo: versions[i]}

		format, err := s.readFormat(ctx, pkg, pv.Version)
		if err != nil {
			patchLog.Debug("%s %s: no source format: %v", pkg, pv.Version, err)
		}
		if err == nil && patches.IsSupported(format) {
			pv.Supported = true
			series, err := s.readSeries(ctx, pkg, pv.Version)
			if err != nil && !domain.IsNotFound(err) {
				return nil, err
			}
			pv.Series = len(series)
			if pv.Series == 0 {
				result.IsEmpty = true
			}
		}
		result.Versions = append(result.Versions, pv)
	}
	return result, nil
}

// Summary describes the patch series of one version.
func (s *PatchService) Summary(ctx context.Context, pkg, version string) (*domain.PatchSummary, error) {
	if s.locator == nil {
		return nil, domain.ErrNotImplemented
	}

	pathTo := pkg + "/" + version
	summary := &domain.PatchSummary{
		Package: pkg,
		Version: version,
		Patches: []domain.PatchInfo{},
	}

	format, err := s.readFormat(ctx, pkg, version)
	switch {
	case errors.Is(err, domain.ErrFileOrFolderNotFound):
		summary.Format = patches.UnknownFormat
		return summary, nil
	case err != nil:
		return nil, err
	}
	summary.Format = format
	summary.SeriesPath = pathTo + "/" + patches.SeriesPath
	if !patches.IsSupported(format) {
		return summary, nil
	}
	summary.Supported = true

	series, err := s.readSeries(ctx, pkg, version)
	if domain.IsNotFound(err) {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range series {
		summary.Patches = append(summary.Patches, s.patchInfo(ctx, pkg, version, entry))
	}
	return summary, nil
}

// patchInfo describes one series entry. Entries without a readable patch
// file are reported with MissingPatchSummary.
func (s *PatchService) patchInfo(ctx context.Context, pkg, version string, entry patches.SeriesEntry) domain.PatchInfo {
	info := domain.PatchInfo{
		Name:    entry.Name,
		Options: entry.Options,
		Path:    patches.PatchPath(entry.Name),
		Deltas:  []domain.FileDelta{},
	}
	missing := func(err error) domain.PatchInfo {
		patchLog.Debug("%s %s: patch %s: %v", pkg, version, entry.Name, err)
		info.Summary = domain.MissingPatchSummary
		info.Description = domain.NoDescription
		return info
	}

	loc, err := s.locator.Locate(ctx, pkg, version, info.Path)
	if err != nil {
		return missing(err)
	}
	if err := loc.Confined(); err != nil {
		return missing(err)
	}
	data, err := os.ReadFile(loc.SourcesPath)
	if err != nil {
		return missing(err)
	}

	stat, err := patches.DiffStat(bytes.NewReader(data))
	if err != nil {
		return missing(err)
	}
	info.Deltas, info.Summary = patches.ParseDeltas(stat.String())
	if info.Deltas == nil {
		info.Deltas = []domain.FileDelta{}
	}
	info.Description, info.Bug = patches.Details(string(data))
	info.Download = loc.StaticPath
	info.Exists = true
	return info
}

// Patch describes a single patch.
func (s *PatchService) Patch(ctx context.Context, pkg, version, name string) (*domain.PatchDetail, error) {
	if s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimRight(name, " \t\r\n/")
	if name == "" {
		return nil, fmt.Errorf("%w: empty patch name", domain.ErrInvalidInput)
	}

	loc, err := s.locator.Locate(ctx, pkg, version, patches.PatchPath(name))
	if err != nil {
		return nil, err
	}
	if err := loc.Confined(); err != nil {
		return nil, err
	}
	if !loc.IsFile() {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileOrFolderNotFound, loc.CleanPathTo())
	}
	data, err := os.ReadFile(loc.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}

	stat, err := patches.DiffStat(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	description, bug := patches.Details(string(data))
	return &domain.PatchDetail{
		Package:     pkg,
		Version:     version,
		Name:        name,
		URL:         loc.StaticPath,
		Description: description,
		Bug:         bug,
		FileDeltas:  stat.String(),
		Path:        loc.CleanPathTo(),
	}, nil
}
