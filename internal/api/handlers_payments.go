package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homegamehq/homegame/internal/service"
)

// GetPayment reports the acknowledgement state for (game, player); a record
// that was never toggled reads as unpaid.
func GetPayment(svc *service.PaymentService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payment, err := svc.Status(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toPaymentResponse(payment))
	}
}

// TogglePayment flips the acknowledgement for (game, player).
func TogglePayment(svc *service.PaymentService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payment, err := svc.Toggle(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toPaymentResponse(payment))
	}
}

// GetMyBalance reports the authenticated player's aggregate balance.
func GetMyBalance(svc *service.BalanceService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := svc.PlayerBalance(r.Context(), GetPlayerID(r.Context()))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toBalanceResponse(balance))
	}
}

// GetPlayerBalance reports any player's aggregate balance.
func GetPlayerBalance(svc *service.BalanceService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := svc.PlayerBalance(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toBalanceResponse(balance))
	}
}
