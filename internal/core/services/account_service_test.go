package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:    accountID,
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		Description:  "Till",
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	var updated domain.Account
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	inactive := false
	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, suite.userID)

	suite.Require().NoError(err)
	suite.False(account.IsActive)
	// Untouched fields survive.
	suite.Equal("Cash", updated.Name)
	suite.Equal("Till", updated.Description)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, fmt.Errorf("%w: account", apperrors.ErrNotFound)).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsLimit() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(ctx, -5, -1)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
