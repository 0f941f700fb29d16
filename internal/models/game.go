package models

// Game is the central mutable aggregate: one poker session from creation
// through opt-ins, rebuys and cash-outs to completion.
//
// While IsCompleted is false, players may be added, removed, or edited. Once
// true, the player list and every player's amounts are frozen; the state
// machine in internal/game enforces this.
type Game struct {
	// ID is the unique identifier for the game (UUID format).
	ID string

	// GroupID is the group this game belongs to.
	GroupID string

	// Date is the Unix timestamp of the session date.
	Date int64

	// Stakes is a free-text label (e.g., "$0.25/$0.50").
	Stakes string

	// DefaultBuyIn is the suggested buy-in amount. Suggested only, not
	// enforced on opt-in.
	DefaultBuyIn float64

	// BankPersonID is the player holding the cash box. Informational.
	BankPersonID string

	// IsCompleted marks the terminal state.
	IsCompleted bool

	// StartTime and EndTime are Unix timestamps; EndTime is zero until the
	// game completes.
	StartTime int64
	EndTime   int64

	// Duration is EndTime - StartTime in seconds, set at completion.
	Duration int64

	// CreatedAt is the Unix timestamp when the game was created.
	CreatedAt int64

	// Players holds one entry per participating player, unique by PlayerID,
	// ordered by join time.
	Players []GamePlayer
}

// Player returns the participation entry for the player id, or nil.
func (g *Game) Player(playerID string) *GamePlayer {
	for i := range g.Players {
		if g.Players[i].PlayerID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

// GamePlayer is one player's participation record within a game.
type GamePlayer struct {
	// PlayerID references the participating player.
	PlayerID string

	// BuyIn is the initial stake committed on opt-in.
	BuyIn float64

	// RebuyAmount is the cumulative additional stake added mid-game.
	RebuyAmount float64

	// Rebuys counts how many rebuys were made.
	Rebuys int

	// CashOut is the final amount taken away; zero until set.
	CashOut float64

	// Profit is always CashOut - (BuyIn + RebuyAmount). It is recomputed by
	// every mutation and never set independently.
	Profit float64

	// HasOptedIn and HasCashedOut track the player's sub-state:
	// not-joined -> opted-in -> cashed-out.
	HasOptedIn   bool
	HasCashedOut bool

	// OptedInAt and CashedOutAt are Unix timestamps for each transition.
	OptedInAt   int64
	CashedOutAt int64
}

// Invested is the player's total stake: buy-in plus all rebuys.
func (p *GamePlayer) Invested() float64 {
	return p.BuyIn + p.RebuyAmount
}

// GameSummary reports a game's totals and per-player results.
type GameSummary struct {
	GameID        string
	IsCompleted   bool
	TotalBuyIns   float64 // buy-ins plus rebuys
	TotalCashOuts float64
	Balanced      bool
	Players       []PlayerResult
}

// PlayerResult is one row of a game summary.
type PlayerResult struct {
	PlayerID     string
	Invested     float64
	CashOut      float64
	Profit       float64
	HasCashedOut bool
}
