package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/core/ports/driving"
	"github.com/custodia-labs/debsources/internal/logger"
	"github.com/custodia-labs/debsources/internal/navigation"
)

var _ driving.ImportService = (*ImportService)(nil)

var importLog = logger.Named("import")

// hashBlockSize is the read size used when hashing files.
const hashBlockSize = 32 * 1024

// ImportService populates the metadata database from Sources indices and
// the mirror.
type ImportService struct {
	packages  driven.PackageStore
	checksums driven.ChecksumStore
	locator   *navigation.Locator
}

// NewImportService creates an import service.
func NewImportService(packages driven.PackageStore, checksums driven.ChecksumStore, locator *navigation.Locator) *ImportService {
	return &ImportService{packages: packages, checksums: checksums, locator: locator}
}

// ImportSources registers every entry of index as published in suite and
// area. Entries with invalid names are skipped.
func (s *ImportService) ImportSources(
	ctx context.Context,
	index driven.SourceIndex,
	suite, area string,
) (*domain.ImportStats, error) {
	if s.packages == nil {
		return nil, domain.ErrNotImplemented
	}
	if area == "" {
		area = domain.Areas[0]
	}
	suite = domain.NormaliseSuite(suite)

	stats := &domain.ImportStats{}
	seen := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		entry, err := index.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading sources index: %w", err)
		}
		if !domain.ValidName(entry.Package) || !domain.ValidName(entry.Version) {
			importLog.Warn("skipping invalid entry %q %q", entry.Package, entry.Version)
			stats.Skipped++
			continue
		}

		pkg := &domain.Package{
			Name:       entry.Package,
			Version:    entry.Version,
			Area:       area,
			VcsType:    entry.VcsType,
			VcsBrowser: entry.VcsBrowser,
		}
		if err := s.packages.SavePackage(ctx, pkg); err != nil {
			return stats, err
		}
		if _, ok := seen[pkg.Name]; !ok {
			seen[pkg.Name] = struct{}{}
			stats.Packages++
		}
		stats.Versions++

		if suite != "" {
			if err := s.packages.AddSuite(ctx, pkg.ID, suite); err != nil {
				return stats, err
			}
			stats.Suites++
		}
		importLog.Debug("imported %s %s (%s)", pkg.Name, pkg.Version, area)
	}
	return stats, nil
}

// ScanMirror registers versions present on the mirror but unknown to the
// database. The layout is <area>/<prefix>/<package>/<version>.
func (s *ImportService) ScanMirror(ctx context.Context) (*domain.ImportStats, error) {
	if s.packages == nil || s.locator == nil {
		return nil, domain.ErrNotImplemented
	}
	root := s.locator.SourcesDir()
	stats := &domain.ImportStats{}
	seen := make(map[string]struct{})

	for _, area := range domain.Areas {
		prefixes, err := readDirs(filepath.Join(root, area))
		if err != nil {
			return stats, err
		}
		for _, prefix := range prefixes {
			pkgs, err := readDirs(filepath.Join(root, area, prefix))
			if err != nil {
				return stats, err
			}
			for _, name := range pkgs {
				if domain.PackagePrefix(name) != prefix {
					stats.Skipped++
					continue
				}
				versions, err := readDirs(filepath.Join(root, area, prefix, name))
				if err != nil {
					return stats, err
				}
				for _, version := range versions {
					if err := ctx.Err(); err != nil {
						return stats, err
					}
					added, err := s.register(ctx, name, version, area)
					if err != nil {
						return stats, err
					}
					if !added {
						continue
					}
					if _, ok := seen[name]; !ok {
						seen[name] = struct{}{}
						stats.Packages++
					}
					stats.Versions++
				}
			}
		}
	}
	return stats, nil
}

// register saves name/version unless the database already knows it.
func (s *ImportService) register(ctx context.Context, name, version, area string) (bool, error) {
	_, err := s.packages.GetPackage(ctx, name, version)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if err := s.packages.SavePackage(ctx, &domain.Package{Name: name, Version: version, Area: area}); err != nil {
		return false, err
	}
	importLog.Debug("found %s %s on disk in %s", name, version, area)
	return true, nil
}

// readDirs lists the subdirectory names of dir. A missing dir is empty.
func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ComputeChecksums records the sha256 of every regular file of a version.
func (s *ImportService) ComputeChecksums(ctx context.Context, pkg, version string, force bool) (int, error) {
	if s.packages == nil || s.checksums == nil || s.locator == nil {
		return 0, domain.ErrNotImplemented
	}

	p, err := s.packages.GetPackage(ctx, pkg, version)
	if err != nil {
		return 0, err
	}
	if !force {
		done, err := s.checksums.HasChecksums(ctx, p.ID)
		if err != nil {
			return 0, err
		}
		if done {
			importLog.Debug("%s %s already has checksums", pkg, version)
			return 0, nil
		}
	}

	loc, err := s.locator.Locate(ctx, pkg, version, "")
	if err != nil {
		return 0, err
	}
	sums, err := hashTree(ctx, loc.VersionPath)
	if err != nil {
		return 0, err
	}
	if err := s.checksums.SaveChecksums(ctx, p.ID, sums); err != nil {
		return 0, err
	}
	importLog.Info("%s %s: %d checksums", pkg, version, len(sums))
	return len(sums), nil
}

// hashTree hashes every regular file below root. Symlinks and special
// files are skipped and never followed.
func hashTree(ctx context.Context, root string) ([]domain.FileChecksum, error) {
	var sums []domain.FileChecksum
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		sum, err := sha256File(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sums = append(sums, domain.FileChecksum{Path: filepath.ToSlash(rel), Sha256: sum, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", root, err)
	}
	return sums, nil
}

// sha256File hashes a file in hashBlockSize reads.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, hashBlockSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
