package user

import (
	"fmt"
	"log/slog"

	"github.com/Ananeya/asset-management-system/internal"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	UpdateStatus(userID int64, status string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// SetStatus activates or deactivates an account. Users are never
// hard-deleted; inactive is the terminal administrative state.
func (s *Service) SetStatus(userID int64, status string) (*User, error) {
	if status != StatusActive && status != StatusInactive {
		return nil, internal.NewValidationError("status must be either active or inactive", internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.UpdateStatus(userID, status); err != nil {
		s.logger.Error("failed to update user status", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("user status updated", "user_id", userID, "status", status)
	return s.repo.GetByID(userID)
}
