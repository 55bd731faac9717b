package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	// FindAccountsByIDsForUpdate locks the given accounts inside tx and
	// returns their current state. Missing accounts yield ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed balance deltas inside tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}
