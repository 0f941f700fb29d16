// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/homegamehq/homegame/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
// Implementations wrap it with the entity and id for context.
var ErrNotFound = errors.New("not found")

// GameMutation describes what a MutateGame callback changed. A nil mutation
// means nothing needs persisting. When Completed is true the store flips the
// game's completion flag and inserts Settlements in the same transaction,
// guarded so settlements are written at most once per game even if two
// writers complete it concurrently.
type GameMutation struct {
	Completed   bool
	Settlements []*models.Settlement
}

// Store defines the persistence operations the services need. This
// abstraction allows swapping storage backends without changing the service
// layer; the core holds no global storage state.
type Store interface {
	// Players.
	CreatePlayer(ctx context.Context, player *models.Player) error
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error)

	// Groups.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, playerIDs []string) error

	// Games. MutateGame loads the game inside a write transaction, applies
	// fn, and persists the result; it is the single atomic
	// read-then-conditionally-complete step the completion race requires.
	CreateGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	ListGamesByGroup(ctx context.Context, groupID string) ([]*models.Game, error)
	ListGamesByPlayer(ctx context.Context, playerID string) ([]*models.Game, error)
	MutateGame(ctx context.Context, gameID string, fn func(*models.Game) (*GameMutation, error)) (*models.Game, error)

	// Settlements. Only the paid state ever changes after creation.
	GetSettlement(ctx context.Context, id string) (*models.Settlement, error)
	ListSettlementsByGame(ctx context.Context, gameID string) ([]*models.Settlement, error)
	ListUnpaidSettlementsByPlayer(ctx context.Context, playerID string) ([]*models.Settlement, error)
	ToggleSettlementPaid(ctx context.Context, id string) (*models.Settlement, error)
	MarkSettlementPaid(ctx context.Context, id string) (*models.Settlement, error)

	// Payment acknowledgements, keyed by (game, player). Toggle creates the
	// record lazily on first call.
	GetPlayerPayment(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error)
	TogglePlayerPayment(ctx context.Context, gameID, playerID string) (*models.PlayerPayment, error)

	// Close releases any resources held by the store.
	Close() error
}
