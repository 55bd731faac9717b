package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
	"github.com/openbooks-hq/openbooks_backend/internal/utils"
)

// ErrInvalidCredentials is returned for a failed login regardless of whether
// the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthConfig carries the token-minting settings the user service needs.
type AuthConfig struct {
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
}

// userService provides registration and authentication.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	auth     AuthConfig
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, auth AuthConfig) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, auth: auth}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new user with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies credentials and mints a bearer token.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.auth.JWTSecret, s.auth.JWTExpiryDuration, s.auth.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.auth.JWTExpiryDuration),
	}, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
