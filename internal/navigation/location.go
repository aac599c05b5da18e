package navigation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/logger"
)

var log = logger.Named("navigation")

// AreaLookup returns the archive area the database records for a version.
type AreaLookup interface {
	GetPackage(ctx context.Context, name, version string) (*domain.Package, error)
}

// Locator resolves locations on the mirror.
type Locator struct {
	store         AreaLookup
	finder        driven.AreaFinder
	sourcesDir    string
	sourcesStatic string
}

// NewLocator creates a locator. If finder is nil, areas are searched
// directly on disk.
func NewLocator(store AreaLookup, finder driven.AreaFinder, sourcesDir, sourcesStatic string) *Locator {
	if finder == nil {
		finder = NewDiskAreaFinder(sourcesDir)
	}
	return &Locator{
		store:         store,
		finder:        finder,
		sourcesDir:    sourcesDir,
		sourcesStatic: sourcesStatic,
	}
}

// SourcesDir returns the mirror root.
func (l *Locator) SourcesDir() string {
	return l.sourcesDir
}

// Location is a directory or file inside an unpacked package version.
type Location struct {
	Package string
	Version string
	// Path is relative to the version root, without leading or trailing
	// slash.
	Path string
	// PathTo is package/version/path as requested.
	PathTo string
	// SourcesPath is the absolute path on the mirror.
	SourcesPath string
	// VersionPath is the absolute path of the version root.
	VersionPath string
	// StaticPath is the URL the raw file is served under.
	StaticPath string
}

// Locate resolves pkg/version/p. It fails with
// domain.ErrInvalidPackageOrVersion when the version is unknown to both
// the database and the mirror, and with domain.ErrFileOrFolderNotFound
// when p does not exist inside it.
func (l *Locator) Locate(ctx context.Context, pkg, version, p string) (*Location, error) {
	if !domain.ValidName(pkg) || (version != "" && !domain.ValidName(version)) {
		return nil, fmt.Errorf("%w: %q %q", domain.ErrInvalidPackageOrVersion, pkg, version)
	}

	debianPath, err := l.debianPath(ctx, pkg, version)
	if err != nil {
		return nil, err
	}

	rel := cleanRelative(p)
	loc := &Location{
		Package:     pkg,
		Version:     version,
		Path:        strings.TrimSuffix(rel, "/"),
		PathTo:      joinPathTo(pkg, version, rel),
		VersionPath: filepath.Join(l.sourcesDir, debianPath, pkg, version),
	}
	loc.SourcesPath = filepath.Join(l.sourcesDir, debianPath, filepath.FromSlash(loc.PathTo))
	loc.StaticPath = path.Join(l.sourcesStatic, filepath.ToSlash(debianPath), loc.PathTo)

	if _, err := os.Stat(loc.SourcesPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileOrFolderNotFound, loc.PathTo)
	}
	return loc, nil
}

// debianPath returns "<area>/<prefix>" for a version.
func (l *Locator) debianPath(ctx context.Context, pkg, version string) (string, error) {
	prefix := domain.PackagePrefix(pkg)

	if l.store != nil {
		p, err := l.store.GetPackage(ctx, pkg, version)
		if err == nil {
			return filepath.Join(p.Area, prefix), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("looking up area: %w", err)
		}
	}

	// Versions are kept on disk after they leave the archive, so the
	// database may not know them any more.
	if area, ok := l.finder.FindArea(pkg, version); ok {
		log.Debug("%s %s found in %s without metadata", pkg, version, area)
		return filepath.Join(area, prefix), nil
	}
	return "", fmt.Errorf("%w: %s %s", domain.ErrInvalidPackageOrVersion, pkg, version)
}

// cleanRelative normalises a user supplied path so it cannot climb out
// of the version root.
func cleanRelative(p string) string {
	if p == "" {
		return ""
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if strings.HasSuffix(p, "/") && cleaned != "" {
		cleaned += "/"
	}
	return cleaned
}

func joinPathTo(pkg, version, rel string) string {
	switch {
	case version == "":
		return pkg + "/"
	case rel == "":
		return pkg + "/" + version + "/"
	default:
		return pkg + "/" + version + "/" + rel
	}
}

// IsDir reports whether the location is a directory, following symlinks.
func (l *Location) IsDir() bool {
	fi, err := os.Stat(l.SourcesPath)
	return err == nil && fi.IsDir()
}

// IsFile reports whether the location is a regular file, following symlinks.
func (l *Location) IsFile() bool {
	fi, err := os.Stat(l.SourcesPath)
	return err == nil && fi.Mode().IsRegular()
}

// IsSymlink reports whether the location itself is a symbolic link.
func (l *Location) IsSymlink() bool {
	fi, err := os.Lstat(l.SourcesPath)
	return err == nil && fi.Mode()&os.ModeSymlink != 0
}

// DeepestElement is the package without a version, the version without a
// path, and the last path element otherwise.
func (l *Location) DeepestElement() string {
	switch {
	case l.Version == "":
		return l.Package
	case l.Path == "":
		return l.Version
	default:
		return path.Base(strings.TrimSuffix(l.Path, "/"))
	}
}

// CleanPathTo is PathTo without trailing slashes.
func (l *Location) CleanPathTo() string {
	return strings.TrimRight(l.PathTo, "/")
}

// ParentPath is the PathTo of the enclosing directory.
func (l *Location) ParentPath() string {
	return path.Dir(l.CleanPathTo())
}

// SymlinkTarget resolves a symlink location. It returns the
// package/version/path the link points to, or domain.ErrInsecureSymlink
// when the target lies outside the version root.
func (l *Location) SymlinkTarget() (string, error) {
	dest, err := os.Readlink(l.SourcesPath)
	if err != nil {
		return "", fmt.Errorf("reading symlink: %w", err)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(l.SourcesPath), dest)
	}
	dest = filepath.Clean(dest)

	root := filepath.Clean(l.VersionPath) + string(filepath.Separator)
	if !strings.HasPrefix(dest, root) {
		return "", fmt.Errorf("%w: %s", domain.ErrInsecureSymlink, l.CleanPathTo())
	}
	rel := filepath.ToSlash(strings.TrimPrefix(dest, root))
	return l.Package + "/" + l.Version + "/" + rel, nil
}

// Confined fails with domain.ErrInsecureSymlink when a symlinked directory
// along the path leads outside the version root. The last element is not
// followed; see SymlinkTarget.
func (l *Location) Confined() error {
	if l.Version == "" || l.Path == "" {
		return nil
	}
	root, err := filepath.EvalSymlinks(l.VersionPath)
	if err != nil {
		return fmt.Errorf("resolving version root: %w", err)
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(l.SourcesPath))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", l.CleanPathTo(), err)
	}
	if parent != root && !strings.HasPrefix(parent, root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", domain.ErrInsecureSymlink, l.CleanPathTo())
	}
	return nil
}
