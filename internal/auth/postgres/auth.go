package postgres

import (
	"time"

	"github.com/Ananeya/asset-management-system/internal/auth"
	userDatamodel "github.com/Ananeya/asset-management-system/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return toAuthUser(&u), nil
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return toAuthUser(&u), nil
}

func (r *Repository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(u *auth.User) error {
	now := time.Now()
	dm := &userDatamodel.User{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	return nil
}

func toAuthUser(u *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		PasswordHash: u.PasswordHash,
	}
}
