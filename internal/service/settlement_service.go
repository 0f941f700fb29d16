package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/settlement"
	"github.com/homegamehq/homegame/internal/storage"
)

// ErrGameNotCompleted rejects settlement operations on games still in play.
var ErrGameNotCompleted = errors.New("game is not completed")

// SettlementService exposes the settlement ledger: listing what a completed
// game generated and tracking paid state.
type SettlementService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSettlementService creates a new SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store, logger *slog.Logger) *SettlementService {
	return &SettlementService{store: store, logger: logger}
}

// ListByGame retrieves the settlements generated for a game.
func (s *SettlementService) ListByGame(ctx context.Context, gameID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGame(ctx, gameID)
}

// ListUnpaidByPlayer retrieves the player's open settlements, on either side
// of the debt.
func (s *SettlementService) ListUnpaidByPlayer(ctx context.Context, playerID string) ([]*models.Settlement, error) {
	return s.store.ListUnpaidSettlementsByPlayer(ctx, playerID)
}

// TogglePaid flips the settlement's paid flag.
func (s *SettlementService) TogglePaid(ctx context.Context, settlementID string) (*models.Settlement, error) {
	st, err := s.store.ToggleSettlementPaid(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Settlement toggled", "settlement_id", st.ID, "is_paid", st.IsPaid)
	return st, nil
}

// MarkPaid transitions the settlement to paid. Unlike TogglePaid it never
// un-pays; marking an already-paid settlement is a no-op.
func (s *SettlementService) MarkPaid(ctx context.Context, settlementID string) (*models.Settlement, error) {
	st, err := s.store.MarkSettlementPaid(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Settlement marked paid", "settlement_id", st.ID)
	return st, nil
}

// Preview re-derives the settlements a completed game's profits produce,
// without persisting anything. Stored settlements are the record; this is a
// read-only check for clients that want to display the computation.
func (s *SettlementService) Preview(ctx context.Context, gameID string) ([]*models.Settlement, error) {
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !g.IsCompleted {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotCompleted)
	}
	return settlement.Generate(g), nil
}
