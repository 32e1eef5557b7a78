package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Ananeya/asset-management-system/internal"
	"github.com/Ananeya/asset-management-system/internal/auth"
	"github.com/Ananeya/asset-management-system/internal/transport"
	"github.com/Ananeya/asset-management-system/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetByID(userID int64) (*User, error)
	SetStatus(userID int64, status string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
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

type updateStatusDTO struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /users/{id}/status (storekeeper only, guarded by
// the router).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var dto updateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.SetStatus(userID, dto.Status)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "user_id", userID)

		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to update user status")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
