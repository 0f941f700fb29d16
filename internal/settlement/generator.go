// Package settlement converts a completed game's per-player profits into
// directed debts.
//
// The allocation rule is proportional distribution: each loser pays each
// winner a share of their loss proportional to the winner's share of total
// winnings. This intentionally produces up to losers x winners settlements
// rather than a transaction-count-minimal netting. Amounts are rounded to
// 2 decimal places, half away from zero; the rounded shares for one loser
// may differ from the loss by at most one cent, which is accepted and not
// corrected.
package settlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/homegamehq/homegame/internal/ledger"
	"github.com/homegamehq/homegame/internal/models"
)

// Generate computes the settlements for a game's current player profits.
// A fully balanced game (no winners or no losers) yields no settlements, as
// does a single-player game with no counterparty.
func Generate(g *models.Game) []*models.Settlement {
	var winners, losers []*models.GamePlayer
	for i := range g.Players {
		p := &g.Players[i]
		switch {
		case p.Profit > 0:
			winners = append(winners, p)
		case p.Profit < 0:
			losers = append(losers, p)
		}
	}
	if len(winners) == 0 || len(losers) == 0 {
		return nil
	}

	var totalWinnings float64
	for _, w := range winners {
		totalWinnings += w.Profit
	}

	now := time.Now().Unix()
	settlements := make([]*models.Settlement, 0, len(losers)*len(winners))
	for _, loser := range losers {
		totalOwed := -loser.Profit
		for _, winner := range winners {
			proportion := ledger.SafeDivide(winner.Profit, totalWinnings)
			amount := ledger.Round2(totalOwed * proportion)
			if amount <= 0 {
				continue
			}
			settlements = append(settlements, &models.Settlement{
				ID:           uuid.New().String(),
				GameID:       g.ID,
				FromPlayerID: loser.PlayerID,
				ToPlayerID:   winner.PlayerID,
				Amount:       amount,
				CreatedAt:    now,
			})
		}
	}
	return settlements
}
