package auth

import (
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResult, error)
	Authenticate(dto LoginDTO) (*AuthResult, error)
	RefreshTokens(refreshToken string) (*AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*User, error)
}

// Repository is the persistence surface the auth service needs.
type Repository interface {
	GetByEmail(email string) (*User, error)
	GetByID(userID int64) (*User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Create(user *User) error
}

type Service struct {
	users      Repository
	tokenGen   TokenGenerator
	bcryptCost int
}

func NewService(users Repository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tokenGen:   tokenGen,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user with a hashed password and issues tokens for the
// new identity. The cleartext password never leaves this method.
func (s *Service) Register(dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = RoleEmployee
	}

	user := &User{
		Username:     dto.Username,
		Email:        dto.Email,
		Role:         role,
		Status:       StatusActive,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Authenticate validates credentials and returns tokens.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActiveUser() {
		return nil, ErrUserInactive
	}

	return s.issueTokens(user)
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *Service) RefreshTokens(refreshToken string) (*AuthResult, error) {
	claims, err := s.tokenGen.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := parseUserID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !user.IsActiveUser() {
		return nil, ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateAccessToken(tokenString)
}

func (s *Service) GetUserByID(userID int64) (*User, error) {
	return s.users.GetByID(userID)
}

func (s *Service) issueTokens(user *User) (*AuthResult, error) {
	accessToken, err := s.tokenGen.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenGen.AccessTTL().Seconds()),
		User:         user,
	}, nil
}
