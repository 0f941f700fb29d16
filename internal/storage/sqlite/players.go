package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

const playerColumns = "id, name, initials, email, password_hash, created_at, updated_at"

// CreatePlayer inserts a new player account.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players ("+playerColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		player.ID, player.Name, player.Initials, player.Email, player.PasswordHash,
		player.CreatedAt, player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	return s.getPlayerBy(ctx, "id", id)
}

// GetPlayerByEmail retrieves a player by email address.
func (s *SQLiteStore) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	return s.getPlayerBy(ctx, "email", email)
}

func (s *SQLiteStore) getPlayerBy(ctx context.Context, column, value string) (*models.Player, error) {
	player := &models.Player{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE "+column+" = ?", value,
	).Scan(&player.ID, &player.Name, &player.Initials, &player.Email, &player.PasswordHash,
		&player.CreatedAt, &player.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}
