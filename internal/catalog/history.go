package catalog

import (
	"context"
	"time"
)

type CommandHistoryRecord struct {
	GuildID     string    `json:"guild_id"`
	GuildName   string    `json:"guild_name"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// AppendCommandHistory records a command execution for a guild.
func (s *Store) AppendCommandHistory(ctx context.Context, rec CommandHistoryRecord) error {
	if rec.Datetime.IsZero() {
		rec.Datetime = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_history (guild_id, guild_name, channel_id, channel_name, user_id, username, command, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GuildID, rec.GuildName, rec.ChannelID, rec.ChannelName,
		rec.UserID, rec.Username, rec.Command, rec.Datetime)
	return err
}

// CommandHistory returns up to limit most recent executions for a guild,
// newest first.
func (s *Store) CommandHistory(ctx context.Context, guildID string, limit int) ([]CommandHistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, guild_name, channel_id, channel_name, user_id, username, command, created_at
		   FROM command_history WHERE guild_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CommandHistoryRecord
	for rows.Next() {
		var rec CommandHistoryRecord
		if err := rows.Scan(&rec.GuildID, &rec.GuildName, &rec.ChannelID, &rec.ChannelName,
			&rec.UserID, &rec.Username, &rec.Command, &rec.Datetime); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
