package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homegamehq/homegame/internal/service"
)

// ListGameSettlements retrieves the settlements generated for a game.
func ListGameSettlements(svc *service.SettlementService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlements, err := svc.ListByGame(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSettlementListResponse(settlements))
	}
}

// PreviewGameSettlements re-derives the settlements for a completed game
// without persisting anything.
func PreviewGameSettlements(svc *service.SettlementService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlements, err := svc.Preview(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSettlementListResponse(settlements))
	}
}

// ListMySettlements retrieves the authenticated player's unpaid settlements.
func ListMySettlements(svc *service.SettlementService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlements, err := svc.ListUnpaidByPlayer(r.Context(), GetPlayerID(r.Context()))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSettlementListResponse(settlements))
	}
}

// ToggleSettlement flips a settlement's paid flag.
func ToggleSettlement(svc *service.SettlementService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlement, err := svc.TogglePaid(r.Context(), chi.URLParam(r, "settlementID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSettlementResponse(settlement))
	}
}

// MarkSettlementPaid transitions a settlement to paid; never un-pays.
func MarkSettlementPaid(svc *service.SettlementService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlement, err := svc.MarkPaid(r.Context(), chi.URLParam(r, "settlementID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toSettlementResponse(settlement))
	}
}
