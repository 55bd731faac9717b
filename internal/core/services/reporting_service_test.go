package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
)

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func TestTrialBalance_SumsAndBalances(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now().UTC()

	repo := new(MockReportingRepository)
	repo.On("TrialBalanceRows", ctx, asOf).Return([]domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountName: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(1200), TotalCredit: decimal.NewFromInt(200)},
		{AccountID: uuid.NewString(), AccountName: "Sales", AccountType: domain.Income, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1200)},
		{AccountID: uuid.NewString(), AccountName: "Rent", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(200), TotalCredit: decimal.Zero},
	}, nil).Once()

	svc := services.NewReportingService(repo)
	resp, err := svc.TrialBalance(ctx, asOf)

	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)
	assert.True(t, resp.TotalDebit.Equal(decimal.NewFromInt(1400)))
	assert.True(t, resp.TotalCredit.Equal(decimal.NewFromInt(1400)))
	assert.True(t, resp.Balanced)
}

func TestTrialBalance_ReportsDrift(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now().UTC()

	repo := new(MockReportingRepository)
	repo.On("TrialBalanceRows", ctx, asOf).Return([]domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountName: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}, nil).Once()

	svc := services.NewReportingService(repo)
	resp, err := svc.TrialBalance(ctx, asOf)

	require.NoError(t, err)
	assert.False(t, resp.Balanced)
}
