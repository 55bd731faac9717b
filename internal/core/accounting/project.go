package accounting

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// VoucherError identifies a violation of the voucher preconditions.
type VoucherError string

const (
	// VoucherErrNonPositiveAmount means the voucher amount is zero or negative.
	VoucherErrNonPositiveAmount VoucherError = "NON_POSITIVE_AMOUNT"
	// VoucherErrMissingCashAccount means the cash/bank account reference is empty.
	VoucherErrMissingCashAccount VoucherError = "MISSING_CASH_ACCOUNT"
	// VoucherErrMissingCounterAccount means the counter account reference is empty.
	VoucherErrMissingCounterAccount VoucherError = "MISSING_COUNTER_ACCOUNT"
	// VoucherErrSameAccount means the cash and counter accounts are identical.
	VoucherErrSameAccount VoucherError = "SAME_ACCOUNT"
	// VoucherErrUnknownType means the voucher type is not one of the known kinds.
	VoucherErrUnknownType VoucherError = "UNKNOWN_TYPE"
)

// CheckVoucher collects every precondition violation on the voucher. A nil
// return means the voucher is projectable.
func CheckVoucher(v domain.Voucher) []VoucherError {
	var errs []VoucherError
	if !v.Amount.IsPositive() {
		errs = append(errs, VoucherErrNonPositiveAmount)
	}
	if v.CashAccountID == "" {
		errs = append(errs, VoucherErrMissingCashAccount)
	}
	if v.CounterAccountID == "" {
		errs = append(errs, VoucherErrMissingCounterAccount)
	}
	if v.CashAccountID != "" && v.CashAccountID == v.CounterAccountID {
		errs = append(errs, VoucherErrSameAccount)
	}
	switch v.VoucherType {
	case domain.Payment, domain.Receipt, domain.Deposit:
	default:
		errs = append(errs, VoucherErrUnknownType)
	}
	return errs
}

// ProjectVoucher derives the canonical two-line journal entry implied by the
// voucher, fixing the debit/credit polarity by voucher type:
//
//   - PAYMENT debits the counter (expense) account and credits cash: money
//     out increases an expense and decreases cash;
//   - RECEIPT and DEPOSIT debit cash and credit the counter (income)
//     account: money in increases cash and increases income.
//
// On any precondition violation it returns nil lines and the full violation
// set. A successful projection always validates: both lines carry the same
// single amount, so total debits equal total credits exactly with no
// arithmetic performed beyond copying the input.
func ProjectVoucher(v domain.Voucher) ([]domain.TransactionLine, []VoucherError) {
	if errs := CheckVoucher(v); len(errs) > 0 {
		return nil, errs
	}

	cash := domain.TransactionLine{
		AccountID:   v.CashAccountID,
		Description: v.Narration,
	}
	counter := domain.TransactionLine{
		AccountID:   v.CounterAccountID,
		Description: v.Narration,
	}

	switch v.VoucherType {
	case domain.Payment:
		counter.Debit = v.Amount
		cash.Credit = v.Amount
		return []domain.TransactionLine{counter, cash}, nil
	case domain.Receipt, domain.Deposit:
		cash.Debit = v.Amount
		counter.Credit = v.Amount
		return []domain.TransactionLine{cash, counter}, nil
	default:
		// Unreachable: CheckVoucher already rejects unknown types.
		return nil, []VoucherError{VoucherErrUnknownType}
	}
}
