package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homegamehq/homegame/internal/service"
)

type createGameRequest struct {
	GroupID      string  `json:"group_id" validate:"required"`
	Date         int64   `json:"date"`
	Stakes       string  `json:"stakes" validate:"max=50"`
	DefaultBuyIn float64 `json:"default_buy_in" validate:"required,gt=0"`
	BankPersonID string  `json:"bank_person_id"`
}

// CreateGame creates a new active game for a group.
func CreateGame(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		game, err := svc.Create(r.Context(), service.CreateGameParams{
			GroupID:      req.GroupID,
			Date:         req.Date,
			Stakes:       req.Stakes,
			DefaultBuyIn: req.DefaultBuyIn,
			BankPersonID: req.BankPersonID,
		})
		if err != nil {
			writeError(logger, w, err)
			return
		}

		writeSuccessStatus(w, http.StatusCreated, toGameResponse(game))
	}
}

// GetGame retrieves a game by ID.
func GetGame(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := svc.Get(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGameResponse(game))
	}
}

// GetGameSummary reports the game's totals, balanced flag and per-player
// results.
func GetGameSummary(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSummaryResponse(summary))
	}
}

type optInRequest struct {
	// PlayerID lets a host opt in someone else; defaults to the caller.
	PlayerID string `json:"player_id"`
	// BuyIn of zero means "use the game's default buy-in".
	BuyIn float64 `json:"buy_in" validate:"gte=0"`
}

// OptIn adds a player to the game.
func OptIn(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req optInRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		playerID := req.PlayerID
		if playerID == "" {
			playerID = GetPlayerID(r.Context())
		}

		game, err := svc.OptIn(r.Context(), chi.URLParam(r, "gameID"), playerID, req.BuyIn)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGameResponse(game))
	}
}

// RemovePlayer removes a player's entry from an uncompleted game.
func RemovePlayer(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := svc.RemovePlayer(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGameResponse(game))
	}
}

type amountRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// AddRebuy records an additional stake for a player.
func AddRebuy(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		game, err := svc.AddRebuy(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"), req.Amount)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGameResponse(game))
	}
}

// CashOut records a player's final amount. If this was the last player, the
// response carries the completed game, its settlements, and the unbalanced
// warning when the table did not square.
func CashOut(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		res, err := svc.CashOut(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"), req.Amount)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, completeResponse{
			Game:        toGameResponse(res.Game),
			Unbalanced:  res.Unbalanced,
			Settlements: toSettlementListResponse(res.Settlements),
		})
	}
}

// CompleteGame transitions the game to completed and generates settlements.
// Completing an already-completed game succeeds and reports it.
func CompleteGame(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Complete(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, completeResponse{
			Game:             toGameResponse(res.Game),
			AlreadyCompleted: res.Status == service.CompletionAlreadyDone,
			Unbalanced:       res.Unbalanced,
			Settlements:      toSettlementListResponse(res.Settlements),
		})
	}
}
