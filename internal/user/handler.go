package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/transport"
)

type ServiceAPI interface {
	GetByID(userID int64) (*User, error)
	UpdateProfile(userID int64, dto *UpdateProfileDTO) (*User, error)
	UpdatePassword(userID int64, dto *UpdatePasswordDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(authUser.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", authUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile handles PATCH /users/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateProfile(authUser.ID, &dto)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Msg)
			return
		}
		h.Logger.Error("UpdateProfile: service error", "user_id", authUser.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// UpdatePassword handles POST /users/me/password
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdatePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdatePassword(authUser.ID, &dto); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Msg)
			return
		}
		h.Logger.Error("UpdatePassword: service error", "user_id", authUser.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
