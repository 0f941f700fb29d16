package models

// PlayerPayment is an informal "are we square" acknowledgement keyed by
// (game, player). It is deliberately decoupled from the computed settlements:
// a player can be marked paid here while unpaid settlements still reference
// them, and vice versa. Created lazily on first toggle.
type PlayerPayment struct {
	GameID   string
	PlayerID string
	IsPaid   bool

	// UpdatedAt is the Unix timestamp of the last toggle.
	UpdatedAt int64
}
