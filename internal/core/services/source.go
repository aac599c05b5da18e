package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
	"github.com/custodia-labs/debsources/internal/navigation"
	"github.com/custodia-labs/debsources/internal/sourcecode"
)

var _ driving.SourceService = (*SourceService)(nil)

// ptsURL is the package tracker page prefix.
const ptsURL = "https://tracker.debian.org/pkg/"

// SourceService browses packages and their unpacked sources.
type SourceService struct {
	packages    driven.PackageStore
	checksums   driven.ChecksumStore
	locator     *navigation.Locator
	hiddenFiles []string
}

// NewSourceService creates a source service. checksums may be nil, in which
// case files are reported without checksum.
func NewSourceService(
	packages driven.PackageStore,
	checksums driven.ChecksumStore,
	locator *navigation.Locator,
	hiddenFiles []string,
) *SourceService {
	return &SourceService{
		packages:    packages,
		checksums:   checksums,
		locator:     locator,
		hiddenFiles: hiddenFiles,
	}
}

// ListPackages returns all package names.
func (s *SourceService) ListPackages(ctx context.Context, suite string) ([]domain.PackageName, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	suite, err := resolveSuite(ctx, s.packages, suite)
	if err != nil {
		return nil, err
	}
	return s.packages.ListNames(ctx, suite)
}

// PackagesByPrefix returns the packages under a pool prefix.
func (s *SourceService) PackagesByPrefix(ctx context.Context, prefix, suite string) ([]domain.PackageName, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty prefix", domain.ErrInvalidInput)
	}
	suite, err := resolveSuite(ctx, s.packages, suite)
	if err != nil {
		return nil, err
	}
	return s.packages.ListNamesByPrefix(ctx, prefix, suite)
}

// Prefixes returns the distinct pool prefixes, sorted.
func (s *SourceService) Prefixes(ctx context.Context, suite string) ([]string, error) {
	names, err := s.ListPackages(ctx, suite)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	prefixes := []string{}
	for _, n := range names {
		p := domain.PackagePrefix(n.Name)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// Search finds packages by name.
func (s *SourceService) Search(ctx context.Context, query, suite string) (*domain.SearchResult, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	suite, err := resolveSuite(ctx, s.packages, suite)
	if err != nil {
		return nil, err
	}

	names, err := s.packages.SearchNames(ctx, query, suite)
	if err != nil {
		return nil, err
	}

	result := &domain.SearchResult{Query: query, Other: []domain.PackageName{}}
	for i := range names {
		if names[i].Name == query {
			exact := names[i]
			result.Exact = &exact
			continue
		}
		result.Other = append(result.Other, names[i])
	}
	return result, nil
}

// ListVersions returns a package's versions in ascending order.
func (s *SourceService) ListVersions(ctx context.Context, pkg, suite string) ([]domain.VersionInfo, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	return listVersions(ctx, s.packages, pkg, suite)
}

// ResolveVersion expands "latest", suites and suite aliases.
func (s *SourceService) ResolveVersion(ctx context.Context, pkg, version string) (string, error) {
	if s.packages == nil {
		return "", domain.ErrNotImplemented
	}

	if version == domain.LatestVersion {
		versions, err := listVersions(ctx, s.packages, pkg, "")
		if err != nil {
			return "", err
		}
		if len(versions) == 0 {
			return "", fmt.Errorf("%w: %s has no versions", domain.ErrNotFound, pkg)
		}
		return versions[len(versions)-1].Version, nil
	}

	suite, err := resolveSuite(ctx, s.packages, version)
	if err != nil || suite == "" {
		return version, err
	}
	suites, err := s.packages.ListSuites(ctx)
	if err != nil {
		return "", err
	}
	if !contains(suites, suite) {
		return version, nil
	}

	versions, err := listVersions(ctx, s.packages, pkg, suite)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("%w: %s has no version in %s", domain.ErrNotFound, pkg, suite)
	}
	return versions[len(versions)-1].Version, nil
}

// Browse resolves a path inside an unpacked package version.
func (s *SourceService) Browse(ctx context.Context, pkg, version, path string) (*domain.BrowseResult, error) {
	if s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	if version == "" {
		return nil, fmt.Errorf("%w: no version given for %s", domain.ErrInvalidPackageOrVersion, pkg)
	}

	loc, err := s.locate(ctx, pkg, version, path)
	if err != nil {
		return nil, err
	}

	result := &domain.BrowseResult{
		Package: pkg,
		Version: version,
		Path:    loc.CleanPathTo(),
	}

	switch {
	case loc.IsSymlink():
		target, err := loc.SymlinkTarget()
		if err != nil {
			return nil, err
		}
		result.Kind = domain.BrowseRedirect
		result.RedirectTo = target
		return result, nil

	case loc.IsDir():
		dir, err := navigation.NewDirectory(loc, s.hiddenFiles)
		if err != nil {
			return nil, err
		}
		content, err := dir.Listing()
		if err != nil {
			return nil, err
		}
		result.Kind = domain.BrowseDirectory
		result.Directory = &domain.DirectoryInfo{Name: loc.DeepestElement(), Content: content}

	default:
		file, err := s.fileInfo(ctx, loc)
		if err != nil {
			return nil, err
		}
		result.Kind = domain.BrowseFile
		result.File = file
	}

	info, err := s.Info(ctx, pkg, version)
	switch {
	case err == nil:
		result.Info = info
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return result, nil
}

// locate resolves a location and refuses paths leaving the version root.
func (s *SourceService) locate(ctx context.Context, pkg, version, path string) (*navigation.Location, error) {
	loc, err := s.locator.Locate(ctx, pkg, version, path)
	if err != nil {
		return nil, err
	}
	if err := loc.Confined(); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *SourceService) fileInfo(ctx context.Context, loc *navigation.Location) (*domain.FileInfo, error) {
	sf, err := navigation.NewSourceFile(loc)
	if err != nil {
		return nil, err
	}
	stat, err := navigation.Stat(loc.SourcesPath)
	if err != nil {
		return nil, err
	}

	info := &domain.FileInfo{
		Name:     loc.DeepestElement(),
		MIME:     sf.MIME(),
		RawURL:   sf.RawURL(),
		TextFile: sf.IsText(),
		Stat:     stat,
	}
	if s.checksums == nil {
		return info, nil
	}

	info.Checksum, err = sf.Sha256(ctx, s.checksums)
	if err != nil {
		return nil, err
	}
	if info.Checksum != "" {
		info.NumberOfDuplicates, err = s.checksums.CountChecksum(ctx, info.Checksum)
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

// Code prepares a text file for display. Safe symlinks are followed.
func (s *SourceService) Code(ctx context.Context, pkg, version, path string, opts domain.CodeOptions) (*domain.CodeView, error) {
	if s.locator == nil {
		return nil, domain.ErrNotImplemented
	}

	loc, err := s.locate(ctx, pkg, version, path)
	if err != nil {
		return nil, err
	}
	if loc.IsSymlink() {
		target, err := loc.SymlinkTarget()
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(target, "/", 3)
		if len(parts) < 3 {
			parts = append(parts, "")
		}
		if loc, err = s.locate(ctx, parts[0], parts[1], parts[2]); err != nil {
			return nil, err
		}
	}
	if !loc.IsFile() {
		return nil, fmt.Errorf("%w: %s is not a file", domain.ErrInvalidInput, loc.CleanPathTo())
	}

	file, err := sourcecode.Open(loc.SourcesPath, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", loc.CleanPathTo(), err)
	}

	view := &domain.CodeView{
		Package:       pkg,
		Version:       version,
		Path:          loc.CleanPathTo(),
		Language:      file.Language(),
		NumberOfLines: file.NumberOfLines(),
		Lines:         file.Lines(),
		Messages:      file.Messages(),
		RawURL:        loc.StaticPath,
	}
	if s.checksums != nil {
		sf, err := navigation.NewSourceFile(loc)
		if err != nil {
			return nil, err
		}
		if view.Checksum, err = sf.Sha256(ctx, s.checksums); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// Suggest lists other versions of pkg in which path exists.
func (s *SourceService) Suggest(ctx context.Context, pkg, version, path string) ([]string, error) {
	if s.packages == nil || s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	versions, err := listVersions(ctx, s.packages, pkg, "")
	if err != nil {
		return nil, err
	}

	suggestions := []string{}
	for _, v := range versions {
		if v.Version == version {
			continue
		}
		if _, err := s.locator.Locate(ctx, pkg, v.Version, path); err == nil {
			suggestions = append(suggestions, v.Version)
		}
	}
	return suggestions, nil
}

// Info returns the package summary box of a version.
func (s *SourceService) Info(ctx context.Context, pkg, version string) (*domain.PackageInfo, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	p, err := s.packages.GetPackage(ctx, pkg, version)
	if err != nil {
		return nil, err
	}

	info := &domain.PackageInfo{
		Package:    p.Name,
		Version:    p.Version,
		Area:       p.Area,
		Suites:     []string{},
		VcsType:    p.VcsType,
		VcsBrowser: p.VcsBrowser,
		PTSLink:    ptsURL + p.Name,
	}
	versions, err := s.packages.ListVersions(ctx, pkg)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.Version == version {
			info.Suites = append(info.Suites, v.Suites...)
		}
	}
	return info, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
