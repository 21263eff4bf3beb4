package service

import (
	"context"
	"errors"

	"hotel-concierge/internal/models"
	"hotel-concierge/pkg/auth"
	"hotel-concierge/pkg/config"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the credential store behind login and admin seeding.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthService struct {
	userRepo   UserStore
	jwtManager *auth.JWTManager
	admin      *config.AdminConfig
	logger     *zap.Logger
}

func NewAuthService(userRepo UserStore, jwtManager *auth.JWTManager, admin *config.AdminConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		admin:      admin,
		logger:     logger,
	}
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.Username)
	if err != nil {
		return "", err
	}

	return token, nil
}

// SeedAdmin creates the default administrative account if it does not exist
// yet. Safe to run on every startup.
func (s *AuthService) SeedAdmin(ctx context.Context) error {
	if _, err := s.userRepo.GetByUsername(ctx, s.admin.Username); err == nil {
		return nil
	}

	hashed, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: s.admin.Username,
		Password: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Default admin account seeded", zap.String("username", s.admin.Username))
	return nil
}
