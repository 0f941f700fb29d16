package service

import (
	"context"
	"log/slog"

	"github.com/homegamehq/homegame/internal/ledger"
	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/storage"
)

// BalanceService computes a player's position across all their completed
// games and open settlements. Balances are derived on every query, never
// stored, so they cannot drift from the games they summarize.
type BalanceService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store, logger *slog.Logger) *BalanceService {
	return &BalanceService{store: store, logger: logger}
}

// PlayerBalance aggregates the player's completed games and unpaid
// settlements. Games still in play are excluded. NetBalance is the net profit
// across completed games; what is owed either way is reported separately and
// not folded in.
func (s *BalanceService) PlayerBalance(ctx context.Context, playerID string) (*models.PlayerBalance, error) {
	games, err := s.store.ListGamesByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	balance := &models.PlayerBalance{}
	for _, g := range games {
		if !g.IsCompleted {
			continue
		}
		p := g.Player(playerID)
		if p == nil {
			continue
		}
		balance.GamesPlayed++
		balance.TotalProfit += p.Profit
		if p.Profit < 0 {
			balance.TotalLoss += -p.Profit
		}
	}

	unpaid, err := s.store.ListUnpaidSettlementsByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, st := range unpaid {
		switch playerID {
		case st.ToPlayerID:
			balance.OwedByOthers += st.Amount
		case st.FromPlayerID:
			balance.OwesToOthers += st.Amount
		}
	}

	balance.TotalProfit = ledger.Round2(balance.TotalProfit)
	balance.TotalLoss = ledger.Round2(balance.TotalLoss)
	balance.OwedByOthers = ledger.Round2(balance.OwedByOthers)
	balance.OwesToOthers = ledger.Round2(balance.OwesToOthers)
	balance.NetBalance = balance.TotalProfit

	return balance, nil
}
