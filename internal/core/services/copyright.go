package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/custodia-labs/debsources/internal/copyright"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
	"github.com/custodia-labs/debsources/internal/logger"
	"github.com/custodia-labs/debsources/internal/navigation"
)

var _ driving.CopyrightService = (*CopyrightService)(nil)

var copyrightLog = logger.Named("copyright")

// CopyrightService reads debian/copyright files.
type CopyrightService struct {
	packages  driven.PackageStore
	checksums driven.ChecksumStore
	locator   *navigation.Locator
}

// NewCopyrightService creates a copyright service. checksums may be nil,
// which disables ChecksumLicenses.
func NewCopyrightService(packages driven.PackageStore, checksums driven.ChecksumStore, locator *navigation.Locator) *CopyrightService {
	return &CopyrightService{packages: packages, checksums: checksums, locator: locator}
}

// readCopyright locates and reads debian/copyright of a version.
func (s *CopyrightService) readCopyright(ctx context.Context, pkg, version string) ([]byte, *navigation.Location, error) {
	loc, err := s.locator.Locate(ctx, pkg, version, copyright.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := loc.Confined(); err != nil {
		return nil, nil, err
	}
	if !loc.IsFile() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrFileOrFolderNotFound, loc.CleanPathTo())
	}
	data, err := os.ReadFile(loc.SourcesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading copyright: %w", err)
	}
	return data, loc, nil
}

// License returns the parsed debian/copyright of a version.
func (s *CopyrightService) License(ctx context.Context, pkg, version string) (*domain.CopyrightView, error) {
	if s.locator == nil {
		return nil, domain.ErrNotImplemented
	}

	data, loc, err := s.readCopyright(ctx, pkg, version)
	if err != nil {
		return nil, err
	}
	view := &domain.CopyrightView{
		Package:  pkg,
		Version:  version,
		URL:      loc.StaticPath,
		Files:    []domain.CopyrightFiles{},
		Licenses: []domain.CopyrightLicense{},
	}

	doc, err := copyright.Parse(bytes.NewReader(data))
	if errors.Is(err, copyright.ErrNotMachineReadable) {
		copyrightLog.Debug("%s %s: %v", pkg, version, err)
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	view.MachineReadable = true
	view.Format = doc.Format
	view.UpstreamName = doc.UpstreamName
	view.Source = doc.Source
	for _, f := range doc.Files {
		view.Files = append(view.Files, filesParagraph(doc, f, path.Join(pkg, version)))
	}
	for _, l := range doc.Licenses {
		view.Licenses = append(view.Licenses, domain.CopyrightLicense{
			Synopsis: l.License.Synopsis,
			Link:     copyright.LicenseURL(l.License.Synopsis),
			Text:     l.License.Text,
			Comment:  l.Comment,
		})
	}
	return view, nil
}

func filesParagraph(doc *copyright.Document, f copyright.Files, pathTo string) domain.CopyrightFiles {
	out := domain.CopyrightFiles{
		Globs:     make([]domain.CopyrightGlob, 0, len(f.Patterns)),
		Copyright: f.Copyright,
		Comment:   f.Comment,
		Synopsis:  f.License.Synopsis,
		Licenses:  []domain.LicenseRef{},
		Text:      f.License.Text,
	}
	for _, pattern := range f.Patterns {
		g := domain.CopyrightGlob{Pattern: pattern}
		if dir, ok := copyright.GlobPath(pattern); ok {
			g.Path = path.Join(pathTo, dir)
		}
		out.Globs = append(out.Globs, g)
	}
	if f.License.Synopsis != "" {
		for _, name := range copyright.SplitSynopsis(f.License.Synopsis) {
			out.Licenses = append(out.Licenses, domain.LicenseRef{Name: name, Link: doc.Link(name)})
		}
	}
	return out
}

// licenseOf returns the license governing p, or nil. Versions without a
// machine-readable copyright file have no license.
func (s *CopyrightService) licenseOf(ctx context.Context, pkg, version, p string) (*string, error) {
	data, _, err := s.readCopyright(ctx, pkg, version)
	if errors.Is(err, domain.ErrFileOrFolderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := copyright.Parse(bytes.NewReader(data))
	if errors.Is(err, copyright.ErrNotMachineReadable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if synopsis := doc.LicenseOf(p); synopsis != "" {
		return &synopsis, nil
	}
	return nil, nil
}

// FileLicenses returns the license governing path in one version, or in
// every version holding it when version is "all".
func (s *CopyrightService) FileLicenses(ctx context.Context, pkg, version, p string) ([]domain.FileLicense, error) {
	if s.packages == nil || s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	versions := []string{version}
	if strings.EqualFold(version, domain.SuiteAll) {
		all, err := listVersions(ctx, s.packages, pkg, "")
		if err != nil {
			return nil, err
		}
		versions = versions[:0]
		for _, v := range all {
			versions = append(versions, v.Version)
		}
	}

	results := []domain.FileLicense{}
	for _, v := range versions {
		loc, err := s.locator.Locate(ctx, pkg, v, p)
		if err == nil {
			err = loc.Confined()
		}
		if err != nil {
			if len(versions) > 1 && domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		license, err := s.licenseOf(ctx, pkg, v, p)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.FileLicense{Package: pkg, Version: v, Path: p, License: license})
	}
	return results, nil
}

// ChecksumLicenses returns the license of every file carrying checksum.
func (s *CopyrightService) ChecksumLicenses(ctx context.Context, checksum, pkg, suite string) ([]domain.FileLicense, error) {
	if s.packages == nil || s.checksums == nil || s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	checksum, err := normaliseChecksum(checksum)
	if err != nil {
		return nil, err
	}
	matches, err := s.checksums.FilesByChecksum(ctx, checksum, pkg)
	if err != nil {
		return nil, err
	}

	keep, err := s.versionFilter(ctx, suite)
	if err != nil {
		return nil, err
	}

	results := []domain.FileLicense{}
	for _, m := range matches {
		ok, err := keep(m.Package, m.Version)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		license, err := s.licenseOf(ctx, m.Package, m.Version, m.Path)
		if err != nil {
			copyrightLog.Debug("%s %s: %v", m.Package, m.Version, err)
		}
		results = append(results, domain.FileLicense{
			Package: m.Package,
			Version: m.Version,
			Path:    m.Path,
			License: license,
		})
	}
	return results, nil
}

// versionFilter returns a predicate keeping the versions of a suite, or
// the newest version of each package for "latest". The predicate caches
// one version listing per package.
func (s *CopyrightService) versionFilter(ctx context.Context, suite string) (func(pkg, version string) (bool, error), error) {
	if domain.NormaliseSuite(suite) == "" {
		return func(string, string) (bool, error) { return true, nil }, nil
	}

	latest := strings.EqualFold(strings.TrimSpace(suite), domain.LatestVersion)
	if !latest {
		var err error
		if suite, err = resolveSuite(ctx, s.packages, suite); err != nil {
			return nil, err
		}
	}

	kept := make(map[string]map[string]bool)
	return func(pkg, version string) (bool, error) {
		versions, ok := kept[pkg]
		if !ok {
			filter := suite
			if latest {
				filter = ""
			}
			list, err := listVersions(ctx, s.packages, pkg, filter)
			if err != nil && !domain.IsNotFound(err) {
				return false, err
			}
			versions = make(map[string]bool, len(list))
			if latest && len(list) > 0 {
				list = list[len(list)-1:]
			}
			for _, v := range list {
				versions[v.Version] = true
			}
			kept[pkg] = versions
		}
		return versions[version], nil
	}, nil
}
