package api

import (
	"log/slog"
	"net/http"

	"github.com/homegamehq/homegame/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new player account and returns it with a session token.
func Register(svc *service.AuthService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		player, token, err := svc.Register(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			writeError(logger, w, err)
			return
		}

		writeSuccessStatus(w, http.StatusCreated, sessionResponse{
			Player: toPlayerResponse(player),
			Token:  token,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a player and returns a session token.
func Login(svc *service.AuthService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		player, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(logger, w, err)
			return
		}

		writeSuccess(w, sessionResponse{
			Player: toPlayerResponse(player),
			Token:  token,
		})
	}
}
