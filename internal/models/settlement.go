package models

// Settlement represents a directed debt between two players, produced by the
// settlement generator when a game completes. Amount and parties are
// immutable after creation; only IsPaid and PaidAt ever change.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GameID is the completed game this settlement was generated for.
	GameID string

	// FromPlayerID is the player who owes.
	FromPlayerID string

	// ToPlayerID is the player who is owed.
	ToPlayerID string

	// Amount is the payment amount, always > 0.
	Amount float64

	// IsPaid marks whether the debt has been settled.
	IsPaid bool

	// CreatedAt is the Unix timestamp when the settlement was generated.
	CreatedAt int64

	// PaidAt is the Unix timestamp of the last transition to paid, zero
	// while unpaid.
	PaidAt int64
}
