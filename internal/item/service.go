package item

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ananeya/asset-management-system/internal"
	"github.com/Ananeya/asset-management-system/internal/core/events"
	"github.com/Ananeya/asset-management-system/internal/user"
	"github.com/google/uuid"
)

// Repository defines the data access surface for items. AssignIfAvailable
// and ReassignIfAssigned are conditional writes: the guard is evaluated in
// the same statement as the update, so two racing assigns cannot both win.
type Repository interface {
	Create(item *Item) error
	GetByID(id int64) (*Item, error)
	GetAll() ([]*Item, error)
	ApplyUpdate(id int64, dto UpdateItemDTO) error
	Delete(id int64) error
	Search(query string) ([]*Item, error)
	Filter(filter ItemFilter) ([]*Item, error)
	GetByAssignee(userID int64) ([]*Item, error)
	AssignIfAvailable(itemID, userID int64, at time.Time) error
	ReassignIfAssigned(itemID, newUserID int64, at time.Time) error
	UpdateStatusField(itemID int64, status string) error
	AppendIssueReport(itemID int64, reportedBy *int64, issue string) error
}

// UserDirectory resolves user ids at assignment time; history entries must
// reference an existing user when written.
type UserDirectory interface {
	GetByID(userID int64) (*user.User, error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// Assign binds an available item to a user, flips availability and appends
// one "assigned" history entry.
func (s *Service) Assign(itemID, userID int64) (*Item, error) {
	it, err := s.repo.GetByID(itemID)
	if err != nil {
		s.logger.Error("assign: item lookup failed", "error", err, "item_id", itemID)
		return nil, internal.ErrItemNotFound
	}

	if !it.Availability {
		s.logger.Warn("assign rejected: item unavailable", "item_id", itemID)
		return nil, internal.ErrItemAlreadyAssigned
	}

	if _, err := s.users.GetByID(userID); err != nil {
		s.logger.Warn("assign rejected: user not found", "item_id", itemID, "user_id", userID)
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.AssignIfAvailable(itemID, userID, time.Now()); err != nil {
		s.logger.Error("assign failed", "error", err, "item_id", itemID, "user_id", userID)
		return nil, err
	}

	s.publish(events.NewItemAssignedEvent(itemID, userID))
	s.logger.Info("item assigned", "item_id", itemID, "user_id", userID)

	return s.repo.GetByID(itemID)
}

// Reassign transfers an assigned item to a new holder. Availability is left
// untouched; only the presence of a current assignee is checked.
func (s *Service) Reassign(itemID, newUserID int64) (*Item, error) {
	it, err := s.repo.GetByID(itemID)
	if err != nil {
		s.logger.Error("reassign: item lookup failed", "error", err, "item_id", itemID)
		return nil, internal.ErrItemNotFound
	}

	if !it.IsAssigned() {
		s.logger.Warn("reassign rejected: item has no assignee", "item_id", itemID)
		return nil, internal.ErrItemNotAssigned
	}

	if _, err := s.users.GetByID(newUserID); err != nil {
		s.logger.Warn("reassign rejected: user not found", "item_id", itemID, "user_id", newUserID)
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.ReassignIfAssigned(itemID, newUserID, time.Now()); err != nil {
		s.logger.Error("reassign failed", "error", err, "item_id", itemID, "user_id", newUserID)
		return nil, err
	}

	s.publish(events.NewItemReassignedEvent(itemID, newUserID))
	s.logger.Info("item reassigned", "item_id", itemID, "new_user_id", newUserID)

	return s.repo.GetByID(itemID)
}

// UpdateStatus overwrites the free-text status field. No history entry is
// appended; assignment history and status are separate audit trails.
func (s *Service) UpdateStatus(itemID int64, dto UpdateStatusDTO, callerID int64) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	it, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}

	if !it.IsHeldBy(callerID) {
		s.logger.Warn("status update rejected: caller is not the holder",
			"item_id", itemID, "caller_id", callerID)
		return nil, internal.ErrNotItemHolder
	}

	if err := s.repo.UpdateStatusField(itemID, dto.Status); err != nil {
		s.logger.Error("status update failed", "error", err, "item_id", itemID)
		return nil, err
	}

	return s.repo.GetByID(itemID)
}

// ReportIssue appends a pending issue report for the item's current holder.
func (s *Service) ReportIssue(itemID int64, dto ReportIssueDTO, callerID int64) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	it, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}

	if !it.IsHeldBy(callerID) {
		s.logger.Warn("issue report rejected: caller is not the holder",
			"item_id", itemID, "caller_id", callerID)
		return nil, internal.ErrNotItemHolder
	}

	if err := s.repo.AppendIssueReport(itemID, &callerID, dto.Issue); err != nil {
		s.logger.Error("issue report failed", "error", err, "item_id", itemID)
		return nil, err
	}

	s.publish(events.NewIssueReportedEvent(itemID, callerID, dto.Issue))
	s.logger.Info("issue reported", "item_id", itemID, "reported_by", callerID)

	return s.repo.GetByID(itemID)
}

func (s *Service) Create(dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	availability := true
	if dto.Availability != nil {
		availability = *dto.Availability
	}

	status := DefaultStatus
	if dto.Status != nil {
		status = *dto.Status
	}

	now := time.Now()
	it := &Item{
		Name:         dto.Name,
		Category:     dto.Category,
		Description:  dto.Description,
		Availability: availability,
		Status:       status,
		History:      []HistoryEntry{},
		IssueReports: []IssueReport{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(it); err != nil {
		s.logger.Error("item creation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("item created", "item_id", it.ID, "name", it.Name, "category", it.Category)
	return it, nil
}

func (s *Service) Update(itemID int64, dto UpdateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	if err := s.repo.ApplyUpdate(itemID, dto); err != nil {
		s.logger.Error("item update failed", "error", err, "item_id", itemID)
		return nil, err
	}

	return s.repo.GetByID(itemID)
}

func (s *Service) Delete(itemID int64) error {
	if _, err := s.repo.GetByID(itemID); err != nil {
		return internal.ErrItemNotFound
	}

	if err := s.repo.Delete(itemID); err != nil {
		s.logger.Error("item deletion failed", "error", err, "item_id", itemID)
		return err
	}

	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}

func (s *Service) GetByID(itemID int64) (*Item, error) {
	it, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}
	return it, nil
}

func (s *Service) GetAll() ([]*Item, error) {
	return s.repo.GetAll()
}

// Search matches the query as a case-insensitive substring of name or
// category. All matches are returned; there is no ranking or pagination.
func (s *Service) Search(query string) ([]*Item, error) {
	return s.repo.Search(query)
}

func (s *Service) Filter(filter ItemFilter) ([]*Item, error) {
	return s.repo.Filter(filter)
}

func (s *Service) AssignedTo(userID int64) ([]*Item, error) {
	return s.repo.GetByAssignee(userID)
}

// RequestAck acknowledges a request for an additional item. Nothing durable
// is recorded.
type RequestAck struct {
	Message   string `json:"msg"`
	ItemID    int64  `json:"itemId"`
	RequestID string `json:"requestId"`
}

func (s *Service) RequestAdditional(itemID int64) (*RequestAck, error) {
	if _, err := s.repo.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	ack := &RequestAck{
		Message:   "Request submitted for additional item",
		ItemID:    itemID,
		RequestID: uuid.NewString(),
	}

	s.logger.Info("additional item requested", "item_id", itemID, "request_id", ack.RequestID)
	return ack, nil
}

func (s *Service) publish(event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("event publish failed", "event_type", event.EventType(), "error", err)
	}
}
