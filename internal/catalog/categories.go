package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"server-scribe/pkg/idx"
)

// CreateCategory inserts a category. A missing id is generated.
func (s *Store) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if c.ID == "" {
		c.ID = idx.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, emoji) VALUES (?, ?, ?)`,
		c.ID, c.Name, nullString(c.Emoji))
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// Category returns the category with the given id.
func (s *Store) Category(ctx context.Context, id string) (Category, error) {
	var c Category
	var emoji sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, emoji FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &emoji)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, fmt.Errorf("category id %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Category{}, err
	}
	c.Emoji = emoji.String
	return c, nil
}

// DeleteCategory deletes the category with the given id.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category id %q: %w", id, ErrNotFound)
	}
	return nil
}

// ListCategories returns every category.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, emoji FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var emoji sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &emoji); err != nil {
			return nil, err
		}
		c.Emoji = emoji.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
