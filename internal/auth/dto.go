package auth

import (
	"github.com/Ananeya/asset-management-system/internal/core/common/validation"
)

// RegisterDTO is the transport shape for registration requests. Role
// defaults to employee when absent.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if err := validation.ValidateUsername(d.Username); err != nil {
		return ValidationError{Msg: err.GetDetailedMessage()}
	}
	if err := validation.ValidateEmail(d.Email); err != nil {
		return ValidationError{Msg: err.GetDetailedMessage()}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if len(d.Password) < 6 {
		return ValidationError{Msg: "password must be at least 6 characters"}
	}
	if d.Role != "" && d.Role != RoleEmployee && d.Role != RoleStorekeeper {
		return ValidationError{Msg: "role must be either employee or storekeeper"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refreshToken is required"}
	}
	return nil
}
