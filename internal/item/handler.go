package item

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Ananeya/asset-management-system/internal/auth"
	"github.com/Ananeya/asset-management-system/internal/transport"
	"github.com/Ananeya/asset-management-system/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Assign(itemID, userID int64) (*Item, error)
	Reassign(itemID, newUserID int64) (*Item, error)
	UpdateStatus(itemID int64, dto UpdateStatusDTO, callerID int64) (*Item, error)
	ReportIssue(itemID int64, dto ReportIssueDTO, callerID int64) (*Item, error)
	Create(dto CreateItemDTO) (*Item, error)
	Update(itemID int64, dto UpdateItemDTO) (*Item, error)
	Delete(itemID int64) error
	GetByID(itemID int64) (*Item, error)
	GetAll() ([]*Item, error)
	Search(query string) ([]*Item, error)
	Filter(filter ItemFilter) ([]*Item, error)
	AssignedTo(userID int64) ([]*Item, error)
	RequestAdditional(itemID int64) (*RequestAck, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto CreateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, it)
}

func (h *Handler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetAllItems: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get items")
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemIDParam(w, r)
	if !ok {
		return
	}

	it, err := h.Service.GetByID(itemID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.Update(itemID, dto)
	if err != nil {
		h.Logger.Error("UpdateItem: service error", "error", err, "item_id", itemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(itemID); err != nil {
		h.Logger.Error("DeleteItem: service error", "error", err, "item_id", itemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Item removed"})
}

func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	items, err := h.Service.Search(query)
	if err != nil {
		h.Logger.Error("SearchItems: service error", "error", err, "query", query)
		h.WriteError(w, http.StatusInternalServerError, "error searching items")
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) FilterItems(w http.ResponseWriter, r *http.Request) {
	var filter ItemFilter

	if raw := r.URL.Query().Get("availability"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "availability must be true or false")
			return
		}
		filter.Availability = &avail
	}

	if raw := r.URL.Query().Get("assignedTo"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "assignedTo must be a user id")
			return
		}
		filter.AssignedTo = &userID
	}

	items, err := h.Service.Filter(filter)
	if err != nil {
		h.Logger.Error("FilterItems: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "error filtering items")
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

// AssignedItems returns the caller's items; storekeepers may inspect any
// user's assignments via ?userId=.
func (h *Handler) AssignedItems(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := user.ID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		if !user.IsStorekeeper() {
			h.WriteError(w, http.StatusForbidden, "only storekeepers may view other users' assignments")
			return
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "userId must be a user id")
			return
		}
		userID = parsed
	}

	items, err := h.Service.AssignedTo(userID)
	if err != nil {
		h.Logger.Error("AssignedItems: service error", "error", err, "user_id", userID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get assigned items")
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, okID := h.itemIDParam(w, r)
	if !okID {
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.UpdateStatus(itemID, dto, user.ID)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "item_id", itemID, "caller_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, okID := h.itemIDParam(w, r)
	if !okID {
		return
	}

	var dto ReportIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.ReportIssue(itemID, dto, user.ID)
	if err != nil {
		h.Logger.Error("ReportIssue: service error", "error", err, "item_id", itemID, "caller_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) RequestItem(w http.ResponseWriter, r *http.Request) {
	var dto RequestItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ack, err := h.Service.RequestAdditional(dto.ItemID)
	if err != nil {
		h.Logger.Error("RequestItem: service error", "error", err, "item_id", dto.ItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ack)
}

func (h *Handler) AssignItem(w http.ResponseWriter, r *http.Request) {
	var dto AssignItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.Service.Assign(dto.ItemID, dto.UserID)
	if err != nil {
		h.Logger.Error("AssignItem: service error", "error", err, "item_id", dto.ItemID, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "Item assigned successfully",
		"item": it,
	})
}

func (h *Handler) ReassignItem(w http.ResponseWriter, r *http.Request) {
	var dto ReassignItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.Service.Reassign(dto.ItemID, dto.NewUserID)
	if err != nil {
		h.Logger.Error("ReassignItem: service error", "error", err, "item_id", dto.ItemID, "new_user_id", dto.NewUserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "Item reassigned successfully",
		"item": it,
	})
}

func (h *Handler) itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	itemID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid item ID")
		return 0, false
	}
	return itemID, true
}
