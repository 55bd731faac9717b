package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, original, reversal, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.String(1), args.Error(2)
}

// --- Mock AccountService (as used by JournalService and VoucherService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// matchIDSet matches a []string argument regardless of order.
func matchIDSet(want ...string) interface{} {
	return mock.MatchedBy(func(got []string) bool {
		if len(got) != len(want) {
			return false
		}
		set := make(map[string]bool, len(got))
		for _, id := range got {
			set[id] = true
		}
		for _, id := range want {
			if !set[id] {
				return false
			}
		}
		return true
	})
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	service          portssvc.JournalSvcFacade
	cashAccount      domain.Account
	liabilityAccount domain.Account
	expenseAccount   domain.Account
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, accounting.NewValidator(decimal.Zero))

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Accounts Payable",
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Rent",
		AccountType:  domain.Expense,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *JournalServiceTestSuite) validCreateRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:    time.Now(),
		Description:  "Office rent for August",
		CurrencyCode: "USD",
		Lines: []dto.TransactionLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestValidateEntry_DryRunNeverPersists() {
	ctx := context.Background()
	req := dto.ValidateEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.TransactionLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	result := suite.service.ValidateEntry(ctx, req)

	suite.False(result.Valid)
	suite.Contains(result.EntryErrors, accounting.EntryErrUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, matchIDSet(suite.expenseAccount.AccountID, suite.cashAccount.AccountID)).Return(accountsMap, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	entry, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	for _, line := range entry.Lines {
		suite.NotEmpty(line.LineID)
		suite.Equal(entry.EntryID, line.EntryID)
	}

	// Debit to an expense raises its balance, credit to an asset lowers it.
	suite.True(savedChanges[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-100)))

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnbalancedReturnsFullResult() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[1].Credit = decimal.NewFromFloat(99.98)

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var validationErr *services.EntryValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.False(validationErr.Result.Valid)
	suite.Contains(validationErr.Result.EntryErrors, accounting.EntryErrUnbalanced)
	suite.True(validationErr.Result.TotalDebit.Equal(decimal.NewFromInt(100)))

	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccountRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	// Balanced, but both lines hit the same account.
	req.Lines[1].AccountID = suite.expenseAccount.AccountID

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	inactive := suite.cashAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, matchIDSet(suite.expenseAccount.AccountID, suite.cashAccount.AccountID)).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	euroCash := suite.cashAccount
	euroCash.CurrencyCode = "EUR"
	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    euroCash,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, matchIDSet(suite.expenseAccount.AccountID, suite.cashAccount.AccountID)).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:      originalID,
		EntryDate:    time.Now().Add(-24 * time.Hour),
		Description:  "Office rent for August",
		CurrencyCode: "USD",
		Status:       domain.Posted,
		Lines: []domain.TransactionLine{
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, originalID).Return(original, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, matchIDSet(suite.expenseAccount.AccountID, suite.cashAccount.AccountID)).Return(accountsMap, nil).Once()

	var savedReversal domain.JournalEntry
	var savedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveReversal", ctx, *original, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(2).(domain.JournalEntry)
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(originalID, reversal.ReversesEntryID)
	suite.Equal(domain.Posted, reversal.Status)

	// Debits and credits swap line by line.
	suite.Require().Len(savedReversal.Lines, 2)
	suite.True(savedReversal.Lines[0].Credit.Equal(decimal.NewFromInt(100)))
	suite.True(savedReversal.Lines[0].Debit.IsZero())
	suite.True(savedReversal.Lines[1].Debit.Equal(decimal.NewFromInt(100)))

	// Balance deltas are the exact negation of the original posting.
	suite.True(savedChanges[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(-100)))
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:           originalID,
		Status:            domain.Posted,
		ReversedByEntryID: uuid.NewString(),
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_NotPosted() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID: originalID,
		Status:  domain.Reversed,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
