package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
)

// ==================== Checksum Store ====================

// checksumStore implements driven.ChecksumStore.
type checksumStore struct {
	store *Store
}

var _ driven.ChecksumStore = (*checksumStore)(nil)

// SaveChecksums replaces the files and checksums recorded for a version.
func (s *checksumStore) SaveChecksums(ctx context.Context, packageID int64, sums []domain.FileChecksum) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checksums WHERE package_id = ?", packageID); err != nil {
		return fmt.Errorf("clearing checksums: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM files WHERE package_id = ?", packageID); err != nil {
		return fmt.Errorf("clearing files: %w", err)
	}

	fileStmt, err := tx.PrepareContext(ctx, "INSERT INTO files (package_id, path, size) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer fileStmt.Close()

	sumStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO checksums (package_id, file_id, sha256) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing checksum insert: %w", err)
	}
	defer sumStmt.Close()

	for _, sum := range sums {
		res, err := fileStmt.ExecContext(ctx, packageID, sum.Path, sum.Size)
		if err != nil {
			return fmt.Errorf("saving file %s: %w", sum.Path, err)
		}
		fileID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading file id: %w", err)
		}
		if _, err := sumStmt.ExecContext(ctx, packageID, fileID, sum.Sha256); err != nil {
			return fmt.Errorf("saving checksum for %s: %w", sum.Path, err)
		}
	}

	return tx.Commit()
}

// HasChecksums reports whether checksums were recorded for a version.
func (s *checksumStore) HasChecksums(ctx context.Context, packageID int64) (bool, error) {
	var exists bool
	err := s.store.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM checksums WHERE package_id = ?)", packageID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking checksums: %w", err)
	}
	return exists, nil
}

// Checksum returns the sha256 of a file.
func (s *checksumStore) Checksum(ctx context.Context, name, version, path string) (string, error) {
	var sha string
	err := s.store.db.QueryRowContext(ctx, `
		SELECT c.sha256
		FROM checksums c
		JOIN files f ON f.id = c.file_id
		JOIN packages p ON p.id = c.package_id
		JOIN package_names n ON n.id = p.name_id
		WHERE n.name = ? AND p.version = ? AND f.path = ?
	`, name, version, path).Scan(&sha)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("scanning checksum: %w", err)
	}
	return sha, nil
}

// CountChecksum returns how many files carry sha256.
func (s *checksumStore) CountChecksum(ctx context.Context, sha256 string) (int, error) {
	var n int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM checksums WHERE sha256 = ?", sha256).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting checksum: %w", err)
	}
	return n, nil
}

// FilesByChecksum lists the files carrying sha256.
func (s *checksumStore) FilesByChecksum(ctx context.Context, sha256, pkg string) ([]domain.ChecksumMatch, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT n.name, p.version, f.path
		FROM checksums c
		JOIN files f ON f.id = c.file_id
		JOIN packages p ON p.id = c.package_id
		JOIN package_names n ON n.id = p.name_id
		WHERE c.sha256 = ? AND (? = '' OR n.name = ?)
		ORDER BY n.name, p.version, f.path
	`, sha256, pkg, pkg)
	if err != nil {
		return nil, fmt.Errorf("querying checksum matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.ChecksumMatch
	for rows.Next() {
		var m domain.ChecksumMatch
		if err := rows.Scan(&m.Package, &m.Version, &m.Path); err != nil {
			return nil, fmt.Errorf("scanning checksum match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
