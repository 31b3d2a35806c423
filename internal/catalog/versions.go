package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"server-scribe/pkg/idx"
)

// CreateVersion inserts a version. A missing id is generated.
func (s *Store) CreateVersion(ctx context.Context, v Version) (Version, error) {
	if v.ID == "" {
		v.ID = idx.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO versions (id, name, enabled) VALUES (?, ?, ?)`,
		v.ID, v.Name, v.Enabled)
	if err != nil {
		if isUniqueViolation(err) {
			return Version{}, fmt.Errorf("version %q: %w", v.Name, ErrExists)
		}
		return Version{}, err
	}
	return v, nil
}

// VersionByID returns the version with the given id.
func (s *Store) VersionByID(ctx context.Context, id string) (Version, error) {
	var v Version
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, enabled FROM versions WHERE id = ?`, id).
		Scan(&v.ID, &v.Name, &v.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return Version{}, fmt.Errorf("version id %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Version{}, err
	}
	return v, nil
}

// SetVersionEnabled flips a version's enabled flag.
func (s *Store) SetVersionEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE versions SET enabled = ? WHERE id = ?`, enabled, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("version id %q: %w", id, ErrNotFound)
	}
	return nil
}

// ListVersions returns every version for cache refresh.
func (s *Store) ListVersions(ctx context.Context) ([]Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, enabled FROM versions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.Name, &v.Enabled); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
