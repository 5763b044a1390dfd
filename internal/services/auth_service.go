package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"committee-backend/internal/config"
	"committee-backend/internal/models"
	"committee-backend/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService authenticates dashboard administrators.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

// AuthServiceImpl handles admin authentication
type AuthServiceImpl struct {
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminUserRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// Login verifies the credentials and issues a signed JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, &StoreError{Op: "find admin user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(password)); err != nil {
		slog.Warn("Failed login attempt", "email", email)
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second)
	claims := jwt.MapClaims{
		"sub":   adminUser.ID.Hex(),
		"email": adminUser.Email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	slog.Info("Admin logged in", "email", email)
	return &models.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// HashPassword produces a bcrypt hash for seeding admin accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
