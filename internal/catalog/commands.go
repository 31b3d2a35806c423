package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"server-scribe/pkg/idx"
)

// CreateCommand inserts a command with its aliases, contents and permissions.
// Missing ids are generated. The stored command is returned.
func (s *Store) CreateCommand(ctx context.Context, cmd Command) (Command, error) {
	if cmd.ID == "" {
		cmd.ID = idx.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Command{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var embedColor sql.NullInt64
	if cmd.EmbedColor != 0 {
		embedColor = sql.NullInt64{Int64: int64(cmd.EmbedColor), Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO commands (id, name, is_embed, embed_color) VALUES (?, ?, ?, ?)`,
		cmd.ID, cmd.Name, cmd.IsEmbed, embedColor)
	if err != nil {
		if isUniqueViolation(err) {
			return Command{}, fmt.Errorf("command %q: %w", cmd.Name, ErrExists)
		}
		return Command{}, err
	}

	for _, alias := range cmd.Aliases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO command_aliases (command_id, alias) VALUES (?, ?)`,
			cmd.ID, alias); err != nil {
			return Command{}, err
		}
	}

	for i, content := range cmd.Contents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO command_contents (id, command_id, version_id, position, title, content, image)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			idx.New(), cmd.ID, content.VersionID, i, content.Title,
			nullString(content.Content), nullString(content.Image)); err != nil {
			return Command{}, err
		}
	}

	for i := range cmd.ChannelPermissions {
		perm := &cmd.ChannelPermissions[i]
		if perm.ID == "" {
			perm.ID = idx.New()
		}
		perm.CommandID = cmd.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO command_channel_permissions (id, command_id, channel_id, type) VALUES (?, ?, ?, ?)`,
			perm.ID, cmd.ID, perm.ChannelID, perm.Type); err != nil {
			return Command{}, err
		}
	}

	for i := range cmd.RolePermissions {
		perm := &cmd.RolePermissions[i]
		if perm.ID == "" {
			perm.ID = idx.New()
		}
		perm.CommandID = cmd.ID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO command_role_permissions (id, command_id, role_id, type) VALUES (?, ?, ?, ?)`,
			perm.ID, cmd.ID, perm.RoleID, perm.Type); err != nil {
			return Command{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// CommandByID returns the fully hydrated command with the given id.
func (s *Store) CommandByID(ctx context.Context, id string) (Command, error) {
	cmds, err := s.queryCommands(ctx, `SELECT id, name, is_embed, embed_color FROM commands WHERE id = ?`, id)
	if err != nil {
		return Command{}, err
	}
	if len(cmds) != 1 {
		return Command{}, fmt.Errorf("command id %q: %w", id, ErrNotFound)
	}
	return cmds[0], nil
}

// FindCommandsByName returns all commands whose display name matches exactly.
func (s *Store) FindCommandsByName(ctx context.Context, name string) ([]Command, error) {
	return s.queryCommands(ctx, `SELECT id, name, is_embed, embed_color FROM commands WHERE name = ?`, name)
}

// FindCommandsByAlias returns all commands carrying the given alias.
func (s *Store) FindCommandsByAlias(ctx context.Context, alias string) ([]Command, error) {
	return s.queryCommands(ctx,
		`SELECT c.id, c.name, c.is_embed, c.embed_color
		   FROM commands c
		   JOIN command_aliases a ON a.command_id = c.id
		  WHERE a.alias = ?`, alias)
}

// ResolveCommand applies the canonical name-then-alias lookup used by every
// mutation handler: exact name first; if that does not land on exactly one
// command, alias membership; if that does not either, ErrNotFound. Zero and
// many matches are reported the same way so callers can surface a single
// "does not exist or ambiguous" outcome.
func (s *Store) ResolveCommand(ctx context.Context, text string) (Command, error) {
	found, err := s.FindCommandsByName(ctx, text)
	if err != nil {
		return Command{}, err
	}
	if len(found) != 1 {
		found, err = s.FindCommandsByAlias(ctx, text)
		if err != nil {
			return Command{}, err
		}
	}
	if len(found) != 1 {
		return Command{}, fmt.Errorf("command %q: %w", text, ErrNotFound)
	}
	return found[0], nil
}

// ListCommands returns every command, fully hydrated, for cache refresh.
func (s *Store) ListCommands(ctx context.Context) ([]Command, error) {
	return s.queryCommands(ctx, `SELECT id, name, is_embed, embed_color FROM commands ORDER BY name`)
}

func (s *Store) queryCommands(ctx context.Context, query string, args ...any) ([]Command, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cmds []Command
	for rows.Next() {
		var cmd Command
		var embedColor sql.NullInt64
		if err := rows.Scan(&cmd.ID, &cmd.Name, &cmd.IsEmbed, &embedColor); err != nil {
			return nil, err
		}
		if embedColor.Valid {
			cmd.EmbedColor = int(embedColor.Int64)
		}
		cmds = append(cmds, cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cmds {
		if err := s.hydrateCommand(ctx, &cmds[i]); err != nil {
			return nil, err
		}
	}
	return cmds, nil
}

func (s *Store) hydrateCommand(ctx context.Context, cmd *Command) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT alias FROM command_aliases WHERE command_id = ? ORDER BY alias`, cmd.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return err
		}
		cmd.Aliases = append(cmd.Aliases, alias)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	contentRows, err := s.db.QueryContext(ctx,
		`SELECT version_id, title, content, image
		   FROM command_contents WHERE command_id = ? ORDER BY position`, cmd.ID)
	if err != nil {
		return err
	}
	defer contentRows.Close()
	for contentRows.Next() {
		var content ContentVariant
		var body, image sql.NullString
		if err := contentRows.Scan(&content.VersionID, &content.Title, &body, &image); err != nil {
			return err
		}
		content.Content = body.String
		content.Image = image.String
		cmd.Contents = append(cmd.Contents, content)
	}
	if err := contentRows.Err(); err != nil {
		return err
	}

	channelRows, err := s.db.QueryContext(ctx,
		`SELECT id, channel_id, type FROM command_channel_permissions WHERE command_id = ?`, cmd.ID)
	if err != nil {
		return err
	}
	defer channelRows.Close()
	for channelRows.Next() {
		perm := ChannelPermission{CommandID: cmd.ID}
		if err := channelRows.Scan(&perm.ID, &perm.ChannelID, &perm.Type); err != nil {
			return err
		}
		cmd.ChannelPermissions = append(cmd.ChannelPermissions, perm)
	}
	if err := channelRows.Err(); err != nil {
		return err
	}

	roleRows, err := s.db.QueryContext(ctx,
		`SELECT id, role_id, type FROM command_role_permissions WHERE command_id = ?`, cmd.ID)
	if err != nil {
		return err
	}
	defer roleRows.Close()
	for roleRows.Next() {
		perm := RolePermission{CommandID: cmd.ID}
		if err := roleRows.Scan(&perm.ID, &perm.RoleID, &perm.Type); err != nil {
			return err
		}
		cmd.RolePermissions = append(cmd.RolePermissions, perm)
	}
	return roleRows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
