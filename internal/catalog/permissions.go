package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"server-scribe/pkg/idx"
)

// RolePermissionFor returns the permission keyed by (commandID, roleID).
func (s *Store) RolePermissionFor(ctx context.Context, commandID, roleID string) (RolePermission, error) {
	perm := RolePermission{CommandID: commandID, RoleID: roleID}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, type FROM command_role_permissions WHERE command_id = ? AND role_id = ?`,
		commandID, roleID).
		Scan(&perm.ID, &perm.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return RolePermission{}, ErrNotFound
	}
	if err != nil {
		return RolePermission{}, err
	}
	return perm, nil
}

// AddRolePermission creates a role permission for the command. A permission
// already present for the (command, role) pair yields ErrExists, both via the
// pre-check and, should two writers race past it, via the store's uniqueness
// constraint.
func (s *Store) AddRolePermission(ctx context.Context, commandID, roleID, permType string) (RolePermission, error) {
	if _, err := s.RolePermissionFor(ctx, commandID, roleID); err == nil {
		return RolePermission{}, ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return RolePermission{}, err
	}

	perm := RolePermission{
		ID:        idx.New(),
		CommandID: commandID,
		RoleID:    roleID,
		Type:      permType,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_role_permissions (id, command_id, role_id, type) VALUES (?, ?, ?, ?)`,
		perm.ID, perm.CommandID, perm.RoleID, perm.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return RolePermission{}, ErrExists
		}
		return RolePermission{}, err
	}
	return perm, nil
}

// RemoveRolePermission deletes the permission keyed by (commandID, roleID).
func (s *Store) RemoveRolePermission(ctx context.Context, commandID, roleID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM command_role_permissions WHERE command_id = ? AND role_id = ?`,
		commandID, roleID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRolePermissions returns the number of permissions for a command,
// mostly useful in tests.
func (s *Store) CountRolePermissions(ctx context.Context, commandID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM command_role_permissions WHERE command_id = ?`, commandID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count role permissions: %w", err)
	}
	return count, nil
}
