package services

import (
	"context"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// UserSvcFacade defines user registration, authentication and lookup.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
