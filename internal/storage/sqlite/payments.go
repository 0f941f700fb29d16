package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

// GetPlayerPayment retrieves the acknowledgement record for (game, player).
// Returns storage.ErrNotFound when no record exists yet; callers treat that
// as unpaid.
func (s *SQLiteStore) GetPlayerPayment(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error) {
	payment := &models.PlayerPayment{}
	var isPaid int
	err := s.db.QueryRowContext(ctx,
		"SELECT game_id, player_id, is_paid, updated_at FROM player_payments WHERE game_id = ? AND player_id = ?",
		gameID, playerID,
	).Scan(&payment.GameID, &payment.PlayerID, &isPaid, &payment.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s/%s: %w", gameID, playerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player payment: %w", err)
	}
	payment.IsPaid = isPaid != 0
	return payment, nil
}

// TogglePlayerPayment creates the record as paid on first call and flips it
// on every call after. The upsert is a single statement so concurrent
// toggles stay a pure flip.
func (s *SQLiteStore) TogglePlayerPayment(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_payments (game_id, player_id, is_paid, updated_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT (game_id, player_id) DO UPDATE SET
		     is_paid = 1 - player_payments.is_paid,
		     updated_at = excluded.updated_at`,
		gameID, playerID, time.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle player payment: %w", err)
	}
	return s.GetPlayerPayment(ctx, gameID, playerID)
}
