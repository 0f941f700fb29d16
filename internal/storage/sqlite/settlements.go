package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

const settlementColumns = "id, game_id, from_player_id, to_player_id, amount, is_paid, created_at, paid_at"

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?", id)
	settlement, err := scanSettlement(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlementsByGame retrieves all settlements generated for a game.
func (s *SQLiteStore) ListSettlementsByGame(ctx context.Context, gameID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE game_id = ? ORDER BY created_at, id", gameID)
}

// ListUnpaidSettlementsByPlayer retrieves every unpaid settlement the player
// is a party to, on either side.
func (s *SQLiteStore) ListUnpaidSettlementsByPlayer(ctx context.Context, playerID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+settlementColumns+` FROM settlements
		 WHERE is_paid = 0 AND (from_player_id = ? OR to_player_id = ?)
		 ORDER BY created_at, id`, playerID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()
	return collectSettlements(rows)
}

// ToggleSettlementPaid flips the paid flag, setting or clearing paid_at
// accordingly. The flip happens in a single statement so concurrent toggles
// stay a pure flip.
func (s *SQLiteStore) ToggleSettlementPaid(ctx context.Context, id string) (*models.Settlement, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements
		 SET is_paid = 1 - is_paid,
		     paid_at = CASE WHEN is_paid = 0 THEN ? ELSE 0 END
		 WHERE id = ?`,
		time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle settlement: %w", err)
	}
	if err := requireAffected(res, "settlement", id); err != nil {
		return nil, err
	}
	return s.GetSettlement(ctx, id)
}

// MarkSettlementPaid transitions the settlement to paid; already-paid
// settlements keep their original paid_at. Kept separate from toggle for
// call sites that must never un-pay.
func (s *SQLiteStore) MarkSettlementPaid(ctx context.Context, id string) (*models.Settlement, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements
		 SET paid_at = CASE WHEN is_paid = 0 THEN ? ELSE paid_at END,
		     is_paid = 1
		 WHERE id = ?`,
		time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark settlement paid: %w", err)
	}
	if err := requireAffected(res, "settlement", id); err != nil {
		return nil, err
	}
	return s.GetSettlement(ctx, id)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, arg string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()
	return collectSettlements(rows)
}

func collectSettlements(rows *sql.Rows) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var isPaid int
	err := row.Scan(&settlement.ID, &settlement.GameID, &settlement.FromPlayerID, &settlement.ToPlayerID,
		&settlement.Amount, &isPaid, &settlement.CreatedAt, &settlement.PaidAt)
	if err != nil {
		return nil, err
	}
	settlement.IsPaid = isPaid != 0
	return settlement, nil
}

func insertSettlement(ctx context.Context, tx *sql.Tx, settlement *models.Settlement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (id, game_id, from_player_id, to_player_id, amount, is_paid, created_at, paid_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GameID, settlement.FromPlayerID, settlement.ToPlayerID,
		settlement.Amount, boolToInt(settlement.IsPaid), settlement.CreatedAt, settlement.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result, entity, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
	}
	return nil
}
