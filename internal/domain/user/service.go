// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projektikatalog/jeftinoRS/internal/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles admin account business logic
type Service struct {
	db        *gorm.DB
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, jwt *auth.JWTManager, passwords *auth.PasswordManager) *Service {
	return &Service{db: db, jwt: jwt, passwords: passwords}
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the authenticated admin and their tokens.
type LoginResponse struct {
	User   *AdminUser      `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// Login authenticates an admin and issues a token pair.
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var admin AdminUser
	if err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := s.passwords.VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.jwt.GenerateTokenPair(admin.ID, admin.Email, "admin")
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := time.Now()
	s.db.Model(&admin).Update("last_login_at", now)
	admin.LastLoginAt = &now

	return &LoginResponse{User: &admin, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *Service) Refresh(refreshToken string) (*auth.TokenPair, error) {
	return s.jwt.RefreshToken(refreshToken)
}

// CreateAdmin registers a new admin account.
func (s *Service) CreateAdmin(email, password string) (*AdminUser, error) {
	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
