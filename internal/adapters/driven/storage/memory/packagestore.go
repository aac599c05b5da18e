package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

var _ driven.PackageStore = (*PackageStore)(nil)

// PackageStore is an in-memory implementation of driven.PackageStore.
type PackageStore struct {
	mu       sync.RWMutex
	nextID   int64
	names    map[string]int64
	packages map[int64]*domain.Package
	suites   map[int64]map[string]struct{}
	aliases  map[string]string
}

// NewPackageStore creates an empty store with the default "unstable" alias.
func NewPackageStore() *PackageStore {
	return &PackageStore{
		names:    make(map[string]int64),
		packages: make(map[int64]*domain.Package),
		suites:   make(map[int64]map[string]struct{}),
		aliases:  map[string]string{"unstable": "sid"},
	}
}

func (s *PackageStore) id() int64 {
	s.nextID++
	return s.nextID
}

// inSuite reports whether any version of name is in suite.
// Caller holds the lock.
func (s *PackageStore) inSuite(name, suite string) bool {
	if suite == "" {
		return true
	}
	for id, pkg := range s.packages {
		if pkg.Name != name {
			continue
		}
		if _, ok := s.suites[id][suite]; ok {
			return true
		}
	}
	return false
}

func (s *PackageStore) filterNames(suite string, keep func(string) bool) []domain.PackageName {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PackageName
	for name, id := range s.names {
		if keep(name) && s.inSuite(name, suite) {
			out = append(out, domain.PackageName{ID: id, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListNames returns all package names.
func (s *PackageStore) ListNames(_ context.Context, suite string) ([]domain.PackageName, error) {
	return s.filterNames(suite, func(string) bool { return true }), nil
}

// ListNamesByPrefix returns names whose pool prefix equals prefix.
func (s *PackageStore) ListNamesByPrefix(_ context.Context, prefix, suite string) ([]domain.PackageName, error) {
	prefix = strings.ToLower(prefix)
	return s.filterNames(suite, func(name string) bool {
		return domain.PackagePrefix(name) == prefix
	}), nil
}

// SearchNames returns names containing query.
func (s *PackageStore) SearchNames(_ context.Context, query, suite string) ([]domain.PackageName, error) {
	query = strings.ToLower(query)
	return s.filterNames(suite, func(name string) bool {
		return strings.Contains(strings.ToLower(name), query)
	}), nil
}

// GetName retrieves a package name.
func (s *PackageStore) GetName(_ context.Context, name string) (*domain.PackageName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.names[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.PackageName{ID: id, Name: name}, nil
}

// ListVersions returns every version of a package.
func (s *PackageStore) ListVersions(_ context.Context, name string) ([]domain.VersionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.names[name]; !ok {
		return nil, domain.ErrNotFound
	}

	var versions []domain.VersionInfo
	for id, pkg := range s.packages {
		if pkg.Name != name {
			continue
		}
		v := domain.VersionInfo{Version: pkg.Version, Area: pkg.Area}
		for suite := range s.suites[id] {
			v.Suites = append(v.Suites, suite)
		}
		sort.Strings(v.Suites)
		versions = append(versions, v)
	}
	return versions, nil
}

// GetPackage retrieves one published version.
func (s *PackageStore) GetPackage(_ context.Context, name, version string) (*domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pkg := range s.packages {
		if pkg.Name == name && pkg.Version == version {
			cp := *pkg
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SavePackage creates or updates a version.
func (s *PackageStore) SavePackage(_ context.Context, pkg *domain.Package) error {
	if pkg == nil || pkg.Name == "" || pkg.Version == "" {
		return fmt.Errorf("%w: package name and version are required", domain.ErrInvalidInput)
	}
	if pkg.Area == "" {
		pkg.Area = domain.Areas[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nameID, ok := s.names[pkg.Name]
	if !ok {
		nameID = s.id()
		s.names[pkg.Name] = nameID
	}
	pkg.NameID = nameID

	for id, existing := range s.packages {
		if existing.NameID == nameID && existing.Version == pkg.Version {
			pkg.ID = id
			cp := *pkg
			s.packages[id] = &cp
			return nil
		}
	}

	pkg.ID = s.id()
	cp := *pkg
	s.packages[pkg.ID] = &cp
	return nil
}

// AddSuite records suite membership.
func (s *PackageStore) AddSuite(_ context.Context, packageID int64, suite string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[packageID]; !ok {
		return domain.ErrNotFound
	}
	if s.suites[packageID] == nil {
		s.suites[packageID] = make(map[string]struct{})
	}
	s.suites[packageID][suite] = struct{}{}
	return nil
}

// ResolveSuiteAlias maps an alias to its suite.
func (s *PackageStore) ResolveSuiteAlias(_ context.Context, alias string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	suite, ok := s.aliases[alias]
	if !ok {
		return "", domain.ErrNotFound
	}
	return suite, nil
}

// SaveSuiteAlias records an alias for a suite.
func (s *PackageStore) SaveSuiteAlias(_ context.Context, alias, suite string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[alias] = suite
	return nil
}

// ListSuites returns every suite that has at least one version.
func (s *PackageStore) ListSuites(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, suites := range s.suites {
		for suite := range suites {
			seen[suite] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for suite := range seen {
		out = append(out, suite)
	}
	sort.Strings(out)
	return out, nil
}

// lookup returns the package with the given ID. Caller holds the lock.
func (s *PackageStore) lookup(id int64) (*domain.Package, bool) {
	pkg, ok := s.packages[id]
	return pkg, ok
}
