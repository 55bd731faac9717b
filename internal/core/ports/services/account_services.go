package services

import (
	"context"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
}
