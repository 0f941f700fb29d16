package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegamehq/homegame/internal/game"
	"github.com/homegamehq/homegame/internal/models"
	"github.com/homegamehq/homegame/internal/settlement"
	"github.com/homegamehq/homegame/internal/storage"
	"github.com/homegamehq/homegame/pkg/metrics"
)

// ErrNotGroupMember rejects operations that reference a player outside the
// game's group.
var ErrNotGroupMember = errors.New("player is not a member of the group")

// CompletionStatus distinguishes a completion that ran from one that found
// the game already completed, or a call that left the game open. Callers
// that need to know whether settlements were generated on this call check
// the status.
type CompletionStatus int

const (
	// CompletionNone means the game is still active after this call.
	CompletionNone CompletionStatus = iota
	// CompletionDone means this call transitioned the game to completed.
	CompletionDone
	// CompletionAlreadyDone means the game was completed before this call;
	// nothing changed.
	CompletionAlreadyDone
)

// CompleteResult reports the outcome of a completion request.
type CompleteResult struct {
	Game        *models.Game
	Status      CompletionStatus
	Settlements []*models.Settlement

	// Unbalanced warns that the game was completed while its buy-ins and
	// cash-outs did not balance, or while players had not cashed out.
	// Completion is not blocked; the host decides.
	Unbalanced bool
}

// CreateGameParams are the inputs for creating a game.
type CreateGameParams struct {
	GroupID      string
	Date         int64
	Stakes       string
	DefaultBuyIn float64
	BankPersonID string
}

// GameService coordinates the game lifecycle: creation, player actions,
// completion and settlement generation. All mutations run through the store's
// single-transaction MutateGame so concurrent writers serialize and
// completion happens at most once.
type GameService struct {
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics.GameMetrics
}

// NewGameService creates a new GameService with the given storage backend.
func NewGameService(store storage.Store, logger *slog.Logger, m *metrics.GameMetrics) *GameService {
	return &GameService{store: store, logger: logger, metrics: m}
}

// Create validates the group and bank person, then persists a new active
// game with an empty player list.
func (s *GameService) Create(ctx context.Context, p CreateGameParams) (*models.Game, error) {
	group, err := s.store.GetGroup(ctx, p.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if p.BankPersonID != "" && !group.HasMember(p.BankPersonID) {
		return nil, fmt.Errorf("bank person %s: %w", p.BankPersonID, ErrNotGroupMember)
	}

	g, err := game.New(p.GroupID, p.Date, p.Stakes, p.DefaultBuyIn, p.BankPersonID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.metrics.IncGamesCreated()
	s.logger.Info("Game created", "game_id", g.ID, "group_id", g.GroupID, "stakes", g.Stakes)
	return g, nil
}

// Get retrieves a game by ID.
func (s *GameService) Get(ctx context.Context, gameID string) (*models.Game, error) {
	return s.store.GetGame(ctx, gameID)
}

// ListByGroup retrieves all games of a group.
func (s *GameService) ListByGroup(ctx context.Context, groupID string) ([]*models.Game, error) {
	return s.store.ListGamesByGroup(ctx, groupID)
}

// Summary reports the game's totals, balanced flag and per-player results.
func (s *GameService) Summary(ctx context.Context, gameID string) (models.GameSummary, error) {
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return models.GameSummary{}, err
	}
	return game.Summary(g), nil
}

// OptIn adds the player to the game (or re-adds them after removal or
// cash-out). A zero buy-in means "use the game's default buy-in". The player
// is also added to the game's group if not yet a member, so joining a game
// via an invite link makes them a regular.
func (s *GameService) OptIn(ctx context.Context, gameID, playerID string, buyIn float64) (*models.Game, error) {
	g, err := s.store.MutateGame(ctx, gameID, func(g *models.Game) (*storage.GameMutation, error) {
		if buyIn == 0 {
			buyIn = g.DefaultBuyIn
		}
		if err := game.OptIn(g, playerID, buyIn); err != nil {
			return nil, err
		}
		return &storage.GameMutation{}, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGroupMembers(ctx, g.GroupID, []string{playerID}); err != nil {
		s.logger.Error("Failed to add player to group", "group_id", g.GroupID, "player_id", playerID, "error", err)
	}

	s.logger.Info("Player opted in", "game_id", gameID, "player_id", playerID, "buy_in", buyIn)
	return g, nil
}

// AddRebuy records an additional stake for the player.
func (s *GameService) AddRebuy(ctx context.Context, gameID, playerID string, amount float64) (*models.Game, error) {
	g, err := s.store.MutateGame(ctx, gameID, func(g *models.Game) (*storage.GameMutation, error) {
		if err := game.AddRebuy(g, playerID, amount); err != nil {
			return nil, err
		}
		return &storage.GameMutation{}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Rebuy added", "game_id", gameID, "player_id", playerID, "amount", amount)
	return g, nil
}

// RemovePlayer removes the player's entry from an uncompleted game.
func (s *GameService) RemovePlayer(ctx context.Context, gameID, playerID string) (*models.Game, error) {
	g, err := s.store.MutateGame(ctx, gameID, func(g *models.Game) (*storage.GameMutation, error) {
		if err := game.RemovePlayer(g, playerID); err != nil {
			return nil, err
		}
		return &storage.GameMutation{}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Player removed", "game_id", gameID, "player_id", playerID)
	return g, nil
}

// CashOut records the player's final amount. When the last opted-in player
// cashes out, the game auto-completes and settlements are generated inside
// the same transaction, so two players cashing out concurrently can never
// generate settlements twice. Auto-completion does not wait for the table to
// balance; an unbalanced table completes with the Unbalanced warning set.
func (s *GameService) CashOut(ctx context.Context, gameID, playerID string, amount float64) (*CompleteResult, error) {
	result := &CompleteResult{Status: CompletionNone}
	g, err := s.store.MutateGame(ctx, gameID, func(g *models.Game) (*storage.GameMutation, error) {
		allOut, err := game.CashOut(g, playerID, amount)
		if err != nil {
			return nil, err
		}
		if allOut {
			result.Status = CompletionDone
			result.Unbalanced = !game.CanComplete(g)
			game.Complete(g)
			return &storage.GameMutation{
				Completed:   true,
				Settlements: settlement.Generate(g),
			}, nil
		}
		return &storage.GameMutation{}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Game = g
	s.logger.Info("Player cashed out", "game_id", gameID, "player_id", playerID, "amount", amount)

	if result.Status == CompletionDone {
		settlements, err := s.store.ListSettlementsByGame(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to list settlements: %w", err)
		}
		result.Settlements = settlements
		s.metrics.IncGamesCompleted()
		s.metrics.AddSettlementsGenerated(len(settlements))
		if result.Unbalanced {
			s.logger.Warn("Game auto-completed unbalanced", "game_id", gameID)
		}
		s.logger.Info("Game auto-completed", "game_id", gameID, "settlements", len(settlements))
	}
	return result, nil
}

// Complete transitions the game to completed and generates settlements.
// Completing an already-completed game is not an error: the result carries
// CompletionAlreadyDone and the existing settlements, and nothing is
// regenerated. An unbalanced game still completes, with the Unbalanced
// warning set.
func (s *GameService) Complete(ctx context.Context, gameID string) (*CompleteResult, error) {
	result := &CompleteResult{Status: CompletionDone}
	g, err := s.store.MutateGame(ctx, gameID, func(g *models.Game) (*storage.GameMutation, error) {
		if g.IsCompleted {
			result.Status = CompletionAlreadyDone
			return nil, nil
		}
		result.Unbalanced = !game.CanComplete(g)
		game.Complete(g)
		return &storage.GameMutation{
			Completed:   true,
			Settlements: settlement.Generate(g),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	result.Game = g

	settlements, err := s.store.ListSettlementsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	result.Settlements = settlements

	if result.Status == CompletionDone {
		s.metrics.IncGamesCompleted()
		s.metrics.AddSettlementsGenerated(len(settlements))
		if result.Unbalanced {
			s.logger.Warn("Game completed unbalanced", "game_id", gameID)
		}
		s.logger.Info("Game completed", "game_id", gameID, "settlements", len(settlements))
	}
	return result, nil
}
