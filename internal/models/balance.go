package models

// PlayerBalance is the derived roll-up of a player's position across all
// completed games and open settlements. It is recomputed on every query and
// never persisted.
type PlayerBalance struct {
	// TotalProfit is the net sum of profits across completed games; may be
	// negative. It is the accounting source of truth.
	TotalProfit float64

	// TotalLoss is the sum of losses (absolute values) from losing games.
	TotalLoss float64

	// OwedByOthers is the sum of unpaid settlement amounts directed to this
	// player.
	OwedByOthers float64

	// OwesToOthers is the sum of unpaid settlement amounts this player owes.
	OwesToOthers float64

	// NetBalance equals TotalProfit. Owed/owing figures are surfaced
	// separately and are not folded in.
	NetBalance float64

	// GamesPlayed counts completed games the player participated in.
	GamesPlayed int
}
