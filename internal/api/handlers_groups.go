package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homegamehq/homegame/internal/service"
)

type createGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateGroup creates a group with the authenticated player as its first
// member.
func CreateGroup(svc *service.GroupService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGroupRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		group, err := svc.Create(r.Context(), req.Name, GetPlayerID(r.Context()))
		if err != nil {
			writeError(logger, w, err)
			return
		}

		writeSuccessStatus(w, http.StatusCreated, toGroupResponse(group))
	}
}

// GetGroup retrieves a group by ID.
func GetGroup(svc *service.GroupService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := svc.Get(r.Context(), chi.URLParam(r, "groupID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGroupResponse(group))
	}
}

type joinGroupRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// JoinGroup adds the authenticated player to the group matching the invite
// code.
func JoinGroup(svc *service.GroupService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinGroupRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(logger, w, err)
			return
		}

		group, err := svc.Join(r.Context(), req.InviteCode, GetPlayerID(r.Context()))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGroupResponse(group))
	}
}

// ListGroupGames retrieves all games of a group, newest first.
func ListGroupGames(svc *service.GameService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := svc.ListByGroup(r.Context(), chi.URLParam(r, "groupID"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeSuccess(w, toGameListResponse(games))
	}
}
