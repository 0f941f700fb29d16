package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

// CreateGame persists a new game to the database.
func (s *SQLiteStore) CreateGame(ctx context.Context, game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt == 0 {
		game.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, group_id, date, stakes, default_buy_in, bank_person_id,
		                    is_completed, start_time, end_time, duration, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.GroupID, game.Date, game.Stakes, game.DefaultBuyIn, game.BankPersonID,
		boolToInt(game.IsCompleted), game.StartTime, game.EndTime, game.Duration, game.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	if err := insertGamePlayers(ctx, tx, game); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGame retrieves a game by ID, including all player entries in join order.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	return getGame(ctx, s.db, id)
}

// ListGamesByGroup retrieves all games for a group, newest first.
func (s *SQLiteStore) ListGamesByGroup(ctx context.Context, groupID string) ([]*models.Game, error) {
	return s.listGames(ctx,
		"SELECT id FROM games WHERE group_id = ? ORDER BY date DESC, created_at DESC", groupID)
}

// ListGamesByPlayer retrieves all games the player participated in, newest
// first.
func (s *SQLiteStore) ListGamesByPlayer(ctx context.Context, playerID string) ([]*models.Game, error) {
	return s.listGames(ctx,
		`SELECT g.id FROM games g
		 JOIN game_players gp ON gp.game_id = g.id
		 WHERE gp.player_id = ?
		 ORDER BY g.date DESC, g.created_at DESC`, playerID)
}

// MutateGame loads the game inside a write transaction, applies fn, and
// persists the result. When fn reports completion, the completion flag is
// flipped with an is_completed = 0 guard; settlements are inserted only when
// that guard wins, so generation runs at most once per game regardless of how
// many writers race to complete it.
func (s *SQLiteStore) MutateGame(ctx context.Context, gameID string, fn func(*models.Game) (*storage.GameMutation, error)) (*models.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	game, err := getGame(ctx, tx, gameID)
	if err != nil {
		return nil, err
	}

	m, err := fn(game)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return game, nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE games SET date = ?, stakes = ?, default_buy_in = ?, bank_person_id = ? WHERE id = ?",
		game.Date, game.Stakes, game.DefaultBuyIn, game.BankPersonID, game.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_players WHERE game_id = ?", game.ID); err != nil {
		return nil, fmt.Errorf("failed to clear game players: %w", err)
	}
	if err := insertGamePlayers(ctx, tx, game); err != nil {
		return nil, err
	}

	if m.Completed {
		res, err := tx.ExecContext(ctx,
			"UPDATE games SET is_completed = 1, end_time = ?, duration = ? WHERE id = ? AND is_completed = 0",
			game.EndTime, game.Duration, game.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to complete game: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read completion result: %w", err)
		}
		if affected == 1 {
			for _, settlement := range m.Settlements {
				if err := insertSettlement(ctx, tx, settlement); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return game, nil
}

func (s *SQLiteStore) listGames(ctx context.Context, query string, arg string) ([]*models.Game, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	games := make([]*models.Game, 0, len(ids))
	for _, id := range ids {
		game, err := getGame(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func getGame(ctx context.Context, q querier, id string) (*models.Game, error) {
	game := &models.Game{}
	var isCompleted int
	err := q.QueryRowContext(ctx,
		`SELECT id, group_id, date, stakes, default_buy_in, bank_person_id,
		        is_completed, start_time, end_time, duration, created_at
		 FROM games WHERE id = ?`, id,
	).Scan(&game.ID, &game.GroupID, &game.Date, &game.Stakes, &game.DefaultBuyIn, &game.BankPersonID,
		&isCompleted, &game.StartTime, &game.EndTime, &game.Duration, &game.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	game.IsCompleted = isCompleted != 0

	rows, err := q.QueryContext(ctx,
		`SELECT player_id, buy_in, rebuy_amount, rebuys, cash_out, profit,
		        has_opted_in, has_cashed_out, opted_in_at, cashed_out_at
		 FROM game_players WHERE game_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get game players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.GamePlayer
		var optedIn, cashedOut int
		if err := rows.Scan(&p.PlayerID, &p.BuyIn, &p.RebuyAmount, &p.Rebuys, &p.CashOut, &p.Profit,
			&optedIn, &cashedOut, &p.OptedInAt, &p.CashedOutAt); err != nil {
			return nil, fmt.Errorf("failed to scan game player: %w", err)
		}
		p.HasOptedIn = optedIn != 0
		p.HasCashedOut = cashedOut != 0
		game.Players = append(game.Players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game players: %w", err)
	}

	return game, nil
}

func insertGamePlayers(ctx context.Context, tx *sql.Tx, game *models.Game) error {
	for i := range game.Players {
		p := &game.Players[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO game_players (game_id, player_id, position, buy_in, rebuy_amount, rebuys,
			                           cash_out, profit, has_opted_in, has_cashed_out, opted_in_at, cashed_out_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			game.ID, p.PlayerID, i, p.BuyIn, p.RebuyAmount, p.Rebuys,
			p.CashOut, p.Profit, boolToInt(p.HasOptedIn), boolToInt(p.HasCashedOut), p.OptedInAt, p.CashedOutAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert game player: %w", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
