package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

func TestProjectVoucher_Payment(t *testing.T) {
	lines, errs := accounting.ProjectVoucher(domain.Voucher{
		VoucherType:      domain.Payment,
		Amount:           dec("250"),
		CashAccountID:    "CASH",
		CounterAccountID: "RENT_EXPENSE",
		VoucherTo:        domain.ToVendor,
	})

	require.Empty(t, errs)
	require.Len(t, lines, 2)

	// A payment increases the expense and decreases cash.
	assert.Equal(t, "RENT_EXPENSE", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(dec("250")))
	assert.True(t, lines[0].Credit.IsZero())

	assert.Equal(t, "CASH", lines[1].AccountID)
	assert.True(t, lines[1].Credit.Equal(dec("250")))
	assert.True(t, lines[1].Debit.IsZero())
}

func TestProjectVoucher_ReceiptAndDeposit(t *testing.T) {
	for _, vt := range []domain.VoucherType{domain.Receipt, domain.Deposit} {
		t.Run(string(vt), func(t *testing.T) {
			lines, errs := accounting.ProjectVoucher(domain.Voucher{
				VoucherType:      vt,
				Amount:           dec("80"),
				CashAccountID:    "CASH",
				CounterAccountID: "SALES_INCOME",
				VoucherTo:        domain.ToClient,
			})

			require.Empty(t, errs)
			require.Len(t, lines, 2)

			// Money received increases cash and increases income.
			assert.Equal(t, "CASH", lines[0].AccountID)
			assert.True(t, lines[0].Debit.Equal(dec("80")))
			assert.Equal(t, "SALES_INCOME", lines[1].AccountID)
			assert.True(t, lines[1].Credit.Equal(dec("80")))
		})
	}
}

func TestProjectVoucher_Preconditions(t *testing.T) {
	valid := domain.Voucher{
		VoucherType:      domain.Payment,
		Amount:           dec("100"),
		CashAccountID:    "CASH",
		CounterAccountID: "EXP",
	}

	tests := []struct {
		name   string
		mutate func(*domain.Voucher)
		want   []accounting.VoucherError
	}{
		{
			name:   "zero amount",
			mutate: func(v *domain.Voucher) { v.Amount = dec("0") },
			want:   []accounting.VoucherError{accounting.VoucherErrNonPositiveAmount},
		},
		{
			name:   "negative amount",
			mutate: func(v *domain.Voucher) { v.Amount = dec("-10") },
			want:   []accounting.VoucherError{accounting.VoucherErrNonPositiveAmount},
		},
		{
			name:   "missing cash account",
			mutate: func(v *domain.Voucher) { v.CashAccountID = "" },
			want:   []accounting.VoucherError{accounting.VoucherErrMissingCashAccount},
		},
		{
			name:   "missing counter account",
			mutate: func(v *domain.Voucher) { v.CounterAccountID = "" },
			want:   []accounting.VoucherError{accounting.VoucherErrMissingCounterAccount},
		},
		{
			name:   "same account on both sides",
			mutate: func(v *domain.Voucher) { v.CounterAccountID = "CASH" },
			want:   []accounting.VoucherError{accounting.VoucherErrSameAccount},
		},
		{
			name:   "unknown voucher type",
			mutate: func(v *domain.Voucher) { v.VoucherType = "TRANSFER" },
			want:   []accounting.VoucherError{accounting.VoucherErrUnknownType},
		},
		{
			name: "everything wrong at once",
			mutate: func(v *domain.Voucher) {
				v.Amount = dec("0")
				v.CashAccountID = ""
				v.CounterAccountID = ""
				v.VoucherType = ""
			},
			want: []accounting.VoucherError{
				accounting.VoucherErrNonPositiveAmount,
				accounting.VoucherErrMissingCashAccount,
				accounting.VoucherErrMissingCounterAccount,
				accounting.VoucherErrUnknownType,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid
			tt.mutate(&v)

			lines, errs := accounting.ProjectVoucher(v)
			assert.Nil(t, lines)
			assert.ElementsMatch(t, tt.want, errs)
		})
	}
}

func TestProjectVoucher_RoundTripsThroughValidation(t *testing.T) {
	validator := accounting.NewValidator(accounting.DefaultTolerance)

	vouchers := []domain.Voucher{
		{VoucherType: domain.Payment, Amount: dec("250"), CashAccountID: "CASH", CounterAccountID: "RENT_EXPENSE"},
		{VoucherType: domain.Receipt, Amount: dec("0.01"), CashAccountID: "CASH", CounterAccountID: "SALES_INCOME"},
		{VoucherType: domain.Deposit, Amount: dec("123456.78"), CashAccountID: "BANK", CounterAccountID: "INTEREST_INCOME"},
	}

	for _, v := range vouchers {
		lines, errs := accounting.ProjectVoucher(v)
		require.Empty(t, errs)

		res := validator.ValidateEntry(lines, testMeta())
		assert.True(t, res.Valid, "projected %s voucher must validate, got %+v", v.VoucherType, res)
		assert.True(t, res.TotalDebit.Equal(v.Amount))
		assert.True(t, res.TotalCredit.Equal(v.Amount))
	}
}

func TestProjectVoucher_Deterministic(t *testing.T) {
	v := domain.Voucher{
		VoucherType:      domain.Payment,
		Amount:           dec("42"),
		CashAccountID:    "CASH",
		CounterAccountID: "EXP",
	}

	first, _ := accounting.ProjectVoucher(v)
	second, _ := accounting.ProjectVoucher(v)
	assert.Equal(t, first, second)
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.TransactionLine
		accountType domain.AccountType
		want        string
	}{
		{name: "debit to asset", line: line("A", "100", "0"), accountType: domain.Asset, want: "100"},
		{name: "credit to asset", line: line("A", "0", "100"), accountType: domain.Asset, want: "-100"},
		{name: "debit to expense", line: line("A", "100", "0"), accountType: domain.Expense, want: "100"},
		{name: "debit to liability", line: line("A", "100", "0"), accountType: domain.Liability, want: "-100"},
		{name: "credit to income", line: line("A", "0", "100"), accountType: domain.Income, want: "100"},
		{name: "credit to equity", line: line("A", "0", "100"), accountType: domain.Equity, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}

	_, err := accounting.SignedAmount(line("A", "100", "0"), "BOGUS")
	assert.Error(t, err)
}
