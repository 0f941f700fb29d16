// Package game implements the lifecycle state machine for a single poker
// session: creation, player opt-in, rebuys, cash-outs, and completion.
//
// Games are created active (there is no separate scheduling step) and move to
// completed exactly once. Per-player sub-states run
// not-joined -> opted-in -> cashed-out. All functions here mutate the
// aggregate in memory only; persistence and the completion race guard live in
// the storage layer.
package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/homegamehq/homegame/internal/ledger"
	"github.com/homegamehq/homegame/internal/models"
)

var (
	// ErrGameCompleted rejects mutations on a completed game.
	ErrGameCompleted = errors.New("game is already completed")
	// ErrPlayerNotInGame rejects operations on a player with no entry.
	ErrPlayerNotInGame = errors.New("player has not opted in to this game")
	// ErrInvalidAmount rejects non-positive buy-ins and rebuys.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrNegativeCashOut rejects cash-outs below zero.
	ErrNegativeCashOut = errors.New("cash-out cannot be negative")
	// ErrInvalidDefaultBuyIn rejects game creation with a non-positive
	// default buy-in.
	ErrInvalidDefaultBuyIn = errors.New("default buy-in must be greater than zero")
)

// New creates an active game with an empty player list. The caller is
// responsible for validating that bankPersonID is a group member.
func New(groupID string, date int64, stakes string, defaultBuyIn float64, bankPersonID string) (*models.Game, error) {
	if defaultBuyIn <= 0 {
		return nil, ErrInvalidDefaultBuyIn
	}
	now := time.Now().Unix()
	if date == 0 {
		date = now
	}
	return &models.Game{
		ID:           uuid.New().String(),
		GroupID:      groupID,
		Date:         date,
		Stakes:       stakes,
		DefaultBuyIn: defaultBuyIn,
		BankPersonID: bankPersonID,
		StartTime:    now,
		CreatedAt:    now,
	}, nil
}

// OptIn adds the player with the given buy-in, or, if an entry already
// exists, replaces the buy-in and clears the cashed-out state (the re-join
// case). At most one entry per player id ever exists.
func OptIn(g *models.Game, playerID string, buyIn float64) error {
	if g.IsCompleted {
		return ErrGameCompleted
	}
	if buyIn <= 0 {
		return ErrInvalidAmount
	}

	now := time.Now().Unix()
	if p := g.Player(playerID); p != nil {
		p.BuyIn = buyIn
		p.CashOut = 0
		p.HasCashedOut = false
		p.CashedOutAt = 0
		p.Profit = ledger.Profit(p.BuyIn, p.RebuyAmount, p.CashOut)
		return nil
	}

	g.Players = append(g.Players, models.GamePlayer{
		PlayerID:   playerID,
		BuyIn:      buyIn,
		Profit:     ledger.Profit(buyIn, 0, 0),
		HasOptedIn: true,
		OptedInAt:  now,
	})
	return nil
}

// AddRebuy records an additional stake for the player and recomputes profit
// from the current cash-out value.
func AddRebuy(g *models.Game, playerID string, amount float64) error {
	if g.IsCompleted {
		return ErrGameCompleted
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	p := g.Player(playerID)
	if p == nil {
		return ErrPlayerNotInGame
	}
	p.Rebuys++
	p.RebuyAmount += amount
	p.Profit = ledger.Profit(p.BuyIn, p.RebuyAmount, p.CashOut)
	return nil
}

// RemovePlayer deletes the player's entry entirely. Only legal before
// completion; used for opt-out, not post-game correction.
func RemovePlayer(g *models.Game, playerID string) error {
	if g.IsCompleted {
		return ErrGameCompleted
	}
	for i := range g.Players {
		if g.Players[i].PlayerID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotInGame
}

// CashOut sets the player's final amount, recomputes profit, and marks the
// player cashed out. It returns true when every opted-in player has now
// cashed out, which is the caller's signal to auto-complete the game.
func CashOut(g *models.Game, playerID string, amount float64) (bool, error) {
	if g.IsCompleted {
		return false, ErrGameCompleted
	}
	if amount < 0 {
		return false, ErrNegativeCashOut
	}
	p := g.Player(playerID)
	if p == nil {
		return false, ErrPlayerNotInGame
	}
	p.CashOut = amount
	p.Profit = ledger.Profit(p.BuyIn, p.RebuyAmount, p.CashOut)
	p.HasCashedOut = true
	p.CashedOutAt = time.Now().Unix()

	return allCashedOut(g), nil
}

// Complete transitions the game to its terminal state, freezing all player
// records. Idempotence for repeated calls is handled by the service layer;
// calling Complete on an already-completed aggregate is a no-op.
func Complete(g *models.Game) {
	if g.IsCompleted {
		return
	}
	g.IsCompleted = true
	g.EndTime = time.Now().Unix()
	if g.StartTime > 0 && g.EndTime >= g.StartTime {
		g.Duration = g.EndTime - g.StartTime
	}
}

// CanComplete is the recommended pre-completion gate: every player has
// cashed out and the table balances within tolerance. The engine does not
// hard-block an unbalanced completion (a host may force-complete); callers
// should surface a warning when this returns false.
func CanComplete(g *models.Game) bool {
	if len(g.Players) == 0 {
		return false
	}
	if !allCashedOut(g) {
		return false
	}
	totalIn, totalOut := totals(g)
	return ledger.IsBalanced(totalIn, totalOut)
}

// Summary reports the game's totals, balanced flag, and per-player results.
func Summary(g *models.Game) models.GameSummary {
	totalIn, totalOut := totals(g)
	s := models.GameSummary{
		GameID:        g.ID,
		IsCompleted:   g.IsCompleted,
		TotalBuyIns:   totalIn,
		TotalCashOuts: totalOut,
		Balanced:      ledger.IsBalanced(totalIn, totalOut),
		Players:       make([]models.PlayerResult, 0, len(g.Players)),
	}
	for i := range g.Players {
		p := &g.Players[i]
		s.Players = append(s.Players, models.PlayerResult{
			PlayerID:     p.PlayerID,
			Invested:     p.Invested(),
			CashOut:      p.CashOut,
			Profit:       p.Profit,
			HasCashedOut: p.HasCashedOut,
		})
	}
	return s
}

func allCashedOut(g *models.Game) bool {
	if len(g.Players) == 0 {
		return false
	}
	for i := range g.Players {
		if !g.Players[i].HasCashedOut {
			return false
		}
	}
	return true
}

func totals(g *models.Game) (totalIn, totalOut float64) {
	for i := range g.Players {
		totalIn += g.Players[i].Invested()
		totalOut += g.Players[i].CashOut
	}
	return totalIn, totalOut
}
