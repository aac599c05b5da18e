package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/debsources/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Store is a unified SQLite-based storage that provides access to
// the package and checksum stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.debsources/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".debsources", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PackageStore returns a PackageStore interface backed by this store.
func (s *Store) PackageStore() driven.PackageStore {
	return &packageStore{store: s}
}

// ChecksumStore returns a ChecksumStore interface backed by this store.
func (s *Store) ChecksumStore() driven.ChecksumStore {
	return &checksumStore{store: s}
}

// StatsStore returns a StatsStore interface backed by this store.
func (s *Store) StatsStore() driven.StatsStore {
	return &statsStore{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return v, nil
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// likePattern escapes LIKE wildcards in s.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ==================== Package Store ====================

// packageStore implements driven.PackageStore.
type packageStore struct {
	store *Store
}

var _ driven.PackageStore = (*packageStore)(nil)

// namesQuery selects distinct names, filtered by suite when the first two
// arguments are non-empty. Callers append extra conditions.
const namesQuery = `
	SELECT DISTINCT n.id, n.name
	FROM package_names n
	JOIN packages p ON p.name_id = n.id
	LEFT JOIN suites s ON s.package_id = p.id
	WHERE (? = '' OR s.suite = ?)`

func (s *packageStore) queryNames(ctx context.Context, cond string, suite string, args ...any) ([]domain.PackageName, error) {
	q := namesQuery + cond + " ORDER BY n.name"
	rows, err := s.store.db.QueryContext(ctx, q, append([]any{suite, suite}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("querying package names: %w", err)
	}
	defer rows.Close()

	var names []domain.PackageName
	for rows.Next() {
		var n domain.PackageName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("scanning package name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListNames returns all package names.
func (s *packageStore) ListNames(ctx context.Context, suite string) ([]domain.PackageName, error) {
	return s.queryNames(ctx, "", suite)
}

// ListNamesByPrefix returns names whose pool prefix equals prefix.
func (s *packageStore) ListNamesByPrefix(ctx context.Context, prefix, suite string) ([]domain.PackageName, error) {
	return s.queryNames(ctx, `
		AND (CASE
			WHEN length(n.name) > 3 AND substr(n.name, 1, 3) = 'lib' THEN substr(n.name, 1, 4)
			ELSE substr(n.name, 1, 1)
		END) = lower(?)`, suite, prefix)
}

// SearchNames returns names containing query.
func (s *packageStore) SearchNames(ctx context.Context, query, suite string) ([]domain.PackageName, error) {
	return s.queryNames(ctx, ` AND n.name LIKE ? ESCAPE '\'`, suite, "%"+likePattern(query)+"%")
}

// GetName retrieves a package name.
func (s *packageStore) GetName(ctx context.Context, name string) (*domain.PackageName, error) {
	var n domain.PackageName
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, name FROM package_names WHERE name = ?", name).Scan(&n.ID, &n.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning package name: %w", err)
	}
	return &n, nil
}

// ListVersions returns every version of a package with its suites.
func (s *packageStore) ListVersions(ctx context.Context, name string) ([]domain.VersionInfo, error) {
	if _, err := s.GetName(ctx, name); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT p.id, p.version, p.area, s.suite
		FROM packages p
		JOIN package_names n ON n.id = p.name_id
		LEFT JOIN suites s ON s.package_id = p.id
		WHERE n.name = ?
		ORDER BY p.id, s.suite
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.VersionInfo
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id    int64
			v     domain.VersionInfo
			suite sql.NullString
		)
		if err := rows.Scan(&id, &v.Version, &v.Area, &suite); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		i, ok := index[id]
		if !ok {
			versions = append(versions, v)
			i = len(versions) - 1
			index[id] = i
		}
		if suite.Valid {
			versions[i].Suites = append(versions[i].Suites, suite.String)
		}
	}
	return versions, rows.Err()
}

// GetPackage retrieves one published version.
func (s *packageStore) GetPackage(ctx context.Context, name, version string) (*domain.Package, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT p.id, p.name_id, n.name, p.version, p.area, p.vcs_type, p.vcs_browser
		FROM packages p
		JOIN package_names n ON n.id = p.name_id
		WHERE n.name = ? AND p.version = ?
	`, name, version)

	var (
		pkg                 domain.Package
		vcsType, vcsBrowser sql.NullString
	)
	err := row.Scan(&pkg.ID, &pkg.NameID, &pkg.Name, &pkg.Version, &pkg.Area, &vcsType, &vcsBrowser)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning package: %w", err)
	}
	pkg.VcsType = vcsType.String
	pkg.VcsBrowser = vcsBrowser.String
	return &pkg, nil
}

// SavePackage creates or updates a version.
func (s *packageStore) SavePackage(ctx context.Context, pkg *domain.Package) error {
	if pkg == nil || pkg.Name == "" || pkg.Version == "" {
		return fmt.Errorf("%w: package name and version are required", domain.ErrInvalidInput)
	}
	if pkg.Area == "" {
		pkg.Area = domain.Areas[0]
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO package_names (name) VALUES (?) ON CONFLICT(name) DO NOTHING", pkg.Name); err != nil {
		return fmt.Errorf("saving package name: %w", err)
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM package_names WHERE name = ?", pkg.Name).Scan(&pkg.NameID); err != nil {
		return fmt.Errorf("scanning package name: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO packages (name_id, version, area, vcs_type, vcs_browser)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name_id, version) DO UPDATE SET
			area = excluded.area,
			vcs_type = excluded.vcs_type,
			vcs_browser = excluded.vcs_browser
	`, pkg.NameID, pkg.Version, pkg.Area, nullString(pkg.VcsType), nullString(pkg.VcsBrowser))
	if err != nil {
		return fmt.Errorf("saving package: %w", err)
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM packages WHERE name_id = ? AND version = ?", pkg.NameID, pkg.Version).Scan(&pkg.ID); err != nil {
		return fmt.Errorf("scanning package: %w", err)
	}

	return tx.Commit()
}

// AddSuite records suite membership. Repeated calls are no-ops.
func (s *packageStore) AddSuite(ctx context.Context, packageID int64, suite string) error {
	_, err := s.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO suites (package_id, suite) VALUES (?, ?)", packageID, suite)
	if err != nil {
		return fmt.Errorf("saving suite: %w", err)
	}
	return nil
}

// ResolveSuiteAlias maps an alias to its suite.
func (s *packageStore) ResolveSuiteAlias(ctx context.Context, alias string) (string, error) {
	var suite string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT suite FROM suite_aliases WHERE alias = ?", alias).Scan(&suite)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("scanning suite alias: %w", err)
	}
	return suite, nil
}

// SaveSuiteAlias records an alias for a suite.
func (s *packageStore) SaveSuiteAlias(ctx context.Context, alias, suite string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO suite_aliases (alias, suite) VALUES (?, ?)
		ON CONFLICT(alias) DO UPDATE SET suite = excluded.suite
	`, alias, suite)
	if err != nil {
		return fmt.Errorf("saving suite alias: %w", err)
	}
	return nil
}

// ListSuites returns every suite that has at least one version.
func (s *packageStore) ListSuites(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT DISTINCT suite FROM suites ORDER BY suite")
	if err != nil {
		return nil, fmt.Errorf("querying suites: %w", err)
	}
	defer rows.Close()

	var suites []string
	for rows.Next() {
		var suite string
		if err := rows.Scan(&suite); err != nil {
			return nil, fmt.Errorf("scanning suite: %w", err)
		}
		suites = append(suites, suite)
	}
	return suites, rows.Err()
}

// nullString converts an empty string to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
