package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/homegamehq/homegame/internal/auth"
	"github.com/homegamehq/homegame/internal/game"
	"github.com/homegamehq/homegame/internal/service"
	"github.com/homegamehq/homegame/internal/storage"
)

// successEnvelope wraps every successful response body.
type successEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope wraps every error response body.
type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeSuccessStatus(w, http.StatusOK, data)
}

func writeSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

// writeError maps domain errors onto HTTP statuses and stable error codes.
// Unknown errors become 500s with the detail kept out of the response.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: msg}})
}

func classifyError(err error) (status int, code string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrPlayerNotInGame):
		return http.StatusNotFound, "player_not_in_game"
	case errors.Is(err, game.ErrGameCompleted):
		return http.StatusConflict, "game_completed"
	case errors.Is(err, service.ErrGameNotCompleted):
		return http.StatusConflict, "game_not_completed"
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict, "email_exists"
	case errors.Is(err, service.ErrNotGroupMember):
		return http.StatusUnprocessableEntity, "not_group_member"
	case errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrNegativeCashOut),
		errors.Is(err, game.ErrInvalidDefaultBuyIn),
		errors.Is(err, auth.ErrWeakPassword),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errBadRequestBody):
		return http.StatusBadRequest, "invalid_body"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
