package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "debsources-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// savePackage stores name/version in area and attaches the given suites.
func savePackage(t *testing.T, store *Store, name, version, area string, suites ...string) *domain.Package {
	t.Helper()
	ctx := context.Background()
	pkg := &domain.Package{Name: name, Version: version, Area: area}
	require.NoError(t, store.PackageStore().SavePackage(ctx, pkg))
	for _, suite := range suites {
		require.NoError(t, store.PackageStore().AddSuite(ctx, pkg.ID, suite))
	}
	return pkg
}

// seedArchive fills the store with a small set of packages.
func seedArchive(t *testing.T, store *Store) {
	t.Helper()
	savePackage(t, store, "gnubg", "1.02.000-2", "main", "jessie")
	savePackage(t, store, "gnubg", "1.06.002-1", "main", "sid", "bookworm")
	savePackage(t, store, "libcaca", "0.99.beta19-2", "main", "sid")
	savePackage(t, store, "libc6", "2.36-9", "main", "bookworm")
	savePackage(t, store, "lame", "3.100-6", "non-free", "sid")
	savePackage(t, store, "ledit", "2.04-1", "main", "jessie")
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "metadata.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	tables := []string{"package_names", "packages", "suites", "suite_aliases", "files", "checksums"}
	for _, table := range tables {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	savePackage(t, store, "gnubg", "1.02.000-2", "main")
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	pkg, err := reopened.PackageStore().GetPackage(context.Background(), "gnubg", "1.02.000-2")
	require.NoError(t, err)
	assert.Equal(t, "main", pkg.Area)

	var applied int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 3, applied)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var enabled int
	require.NoError(t, store.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestNewStore_ForeignKeysOnEveryConnection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Holding each connection forces the pool to open a fresh one.
	for i := 0; i < 4; i++ {
		conn, err := store.db.Conn(ctx)
		require.NoError(t, err)
		defer conn.Close()

		var enabled int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
		assert.Equal(t, 1, enabled, "connection %d", i)
	}
}

func TestNewStore_DeleteCascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	pkg := savePackage(t, store, "gnubg", "1.02.000-2", "main", "jessie")

	// Holding one connection makes the delete run on a fresh one.
	held, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	_, err = store.db.ExecContext(ctx, "DELETE FROM package_names WHERE name = ?", "gnubg")
	require.NoError(t, err)

	var suites int
	require.NoError(t, store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM suites WHERE package_id = ?", pkg.ID).Scan(&suites))
	assert.Zero(t, suites)

	_, err = store.PackageStore().GetPackage(ctx, "gnubg", "1.02.000-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.PackageStore())
	assert.NotNil(t, store.ChecksumStore())
	assert.NotNil(t, store.StatsStore())
}

// ==================== Package Store Tests ====================

func TestPackageStore_SavePackage_FillsIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	first := savePackage(t, store, "gnubg", "1.02.000-2", "main")
	second := savePackage(t, store, "gnubg", "1.06.002-1", "main")

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.NameID, second.NameID)
}

func TestPackageStore_SavePackage_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := savePackage(t, store, "gnubg", "1.02.000-2", "main")
	again := &domain.Package{
		Name: "gnubg", Version: "1.02.000-2", Area: "contrib",
		VcsType: "git", VcsBrowser: "https://salsa.debian.org/games-team/gnubg",
	}
	require.NoError(t, store.PackageStore().SavePackage(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	pkg, err := store.PackageStore().GetPackage(ctx, "gnubg", "1.02.000-2")
	require.NoError(t, err)
	assert.Equal(t, "contrib", pkg.Area)
	assert.Equal(t, "git", pkg.VcsType)
	assert.Equal(t, "https://salsa.debian.org/games-team/gnubg", pkg.VcsBrowser)
	assert.Equal(t, "gnubg", pkg.Name)
}

func TestPackageStore_SavePackage_DefaultArea(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	pkg := &domain.Package{Name: "ledit", Version: "2.04-1"}
	require.NoError(t, store.PackageStore().SavePackage(context.Background(), pkg))
	assert.Equal(t, "main", pkg.Area)
}

func TestPackageStore_SavePackage_Invalid(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.PackageStore().SavePackage(context.Background(), &domain.Package{Name: "gnubg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPackageStore_GetPackage_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.PackageStore().GetPackage(context.Background(), "nope", "1.0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageStore_ListNames(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)
	ctx := context.Background()

	names, err := store.PackageStore().ListNames(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"gnubg", "lame", "ledit", "libc6", "libcaca"}, nameList(names))

	names, err = store.PackageStore().ListNames(ctx, "jessie")
	require.NoError(t, err)
	assert.Equal(t, []string{"gnubg", "ledit"}, nameList(names))

	names, err = store.PackageStore().ListNames(ctx, "hamm")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPackageStore_ListNamesByPrefix(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)
	ctx := context.Background()

	names, err := store.PackageStore().ListNamesByPrefix(ctx, "l", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"lame", "ledit"}, nameList(names))

	names, err = store.PackageStore().ListNamesByPrefix(ctx, "LIBC", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"libc6", "libcaca"}, nameList(names))

	names, err = store.PackageStore().ListNamesByPrefix(ctx, "libc", "sid")
	require.NoError(t, err)
	assert.Equal(t, []string{"libcaca"}, nameList(names))
}

func TestPackageStore_SearchNames(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)
	ctx := context.Background()

	names, err := store.PackageStore().SearchNames(ctx, "CA", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"libcaca"}, nameList(names))

	names, err = store.PackageStore().SearchNames(ctx, "%", "")
	require.NoError(t, err)
	assert.Empty(t, names)

	names, err = store.PackageStore().SearchNames(ctx, "e", "jessie")
	require.NoError(t, err)
	assert.Equal(t, []string{"ledit"}, nameList(names))
}

func TestPackageStore_GetName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)
	ctx := context.Background()

	name, err := store.PackageStore().GetName(ctx, "gnubg")
	require.NoError(t, err)
	assert.Equal(t, "gnubg", name.Name)

	_, err = store.PackageStore().GetName(ctx, "gnu")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageStore_ListVersions(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)
	ctx := context.Background()

	versions, err := store.PackageStore().ListVersions(ctx, "gnubg")
	require.NoError(t, err)
	require.Len(t, versions, 2)

	byVersion := map[string]domain.VersionInfo{}
	for _, v := range versions {
		byVersion[v.Version] = v
	}
	assert.Equal(t, []string{"jessie"}, byVersion["1.02.000-2"].Suites)
	assert.Equal(t, []string{"bookworm", "sid"}, byVersion["1.06.002-1"].Suites)
	assert.Equal(t, "main", byVersion["1.06.002-1"].Area)

	_, err = store.PackageStore().ListVersions(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageStore_ListVersions_NoSuites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	savePackage(t, store, "ledit", "2.04-1", "main")

	versions, err := store.PackageStore().ListVersions(context.Background(), "ledit")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Empty(t, versions[0].Suites)
}

func TestPackageStore_AddSuite_Idempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pkg := savePackage(t, store, "gnubg", "1.02.000-2", "main", "jessie")
	require.NoError(t, store.PackageStore().AddSuite(ctx, pkg.ID, "jessie"))

	versions, err := store.PackageStore().ListVersions(ctx, "gnubg")
	require.NoError(t, err)
	assert.Equal(t, []string{"jessie"}, versions[0].Suites)
}

func TestPackageStore_SuiteAliases(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ps := store.PackageStore()

	suite, err := ps.ResolveSuiteAlias(ctx, "unstable")
	require.NoError(t, err)
	assert.Equal(t, "sid", suite)

	_, err = ps.ResolveSuiteAlias(ctx, "stable")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, ps.SaveSuiteAlias(ctx, "stable", "bookworm"))
	require.NoError(t, ps.SaveSuiteAlias(ctx, "stable", "trixie"))
	suite, err = ps.ResolveSuiteAlias(ctx, "stable")
	require.NoError(t, err)
	assert.Equal(t, "trixie", suite)
}

func TestPackageStore_ListSuites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedArchive(t, store)

	suites, err := store.PackageStore().ListSuites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bookworm", "jessie", "sid"}, suites)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `100\%`, likePattern("100%"))
	assert.Equal(t, `lib\_x`, likePattern("lib_x"))
	assert.Equal(t, `a\\b`, likePattern(`a\b`))
}

func nameList(names []domain.PackageName) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.Name)
	}
	return out
}
