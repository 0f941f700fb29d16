package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegamehq/homegame/internal/game"
	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

// PaymentService manages per-player payment acknowledgements. These are an
// informal checklist kept alongside the settlements, never reconciled with
// them.
type PaymentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPaymentService creates a new PaymentService with the given storage
// backend.
func NewPaymentService(store storage.Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{store: store, logger: logger}
}

// Status reports the acknowledgement state for (game, player). A record that
// was never toggled reads as unpaid.
func (s *PaymentService) Status(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error) {
	if err := s.requirePlayerInGame(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	payment, err := s.store.GetPlayerPayment(ctx, gameID, playerID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.PlayerPayment{GameID: gameID, PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Toggle flips the acknowledgement for (game, player), creating it as paid on
// first call.
func (s *PaymentService) Toggle(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error) {
	if err := s.requirePlayerInGame(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	payment, err := s.store.TogglePlayerPayment(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Payment toggled", "game_id", gameID, "player_id", playerID, "is_paid", payment.IsPaid)
	return payment, nil
}

func (s *PaymentService) requirePlayerInGame(ctx context.Context, gameID, playerID string) error {
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g.Player(playerID) == nil {
		return fmt.Errorf("player %s: %w", playerID, game.ErrPlayerNotInGame)
	}
	return nil
}
