package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType selects the debit/credit polarity of the projected entry.
type VoucherType string

const (
	Payment VoucherType = "PAYMENT"
	Receipt VoucherType = "RECEIPT"
	Deposit VoucherType = "DEPOSIT"
)

// VoucherCounterparty classifies who the voucher was issued to. It is
// carried through for display and audit only and never participates in the
// balance computation.
type VoucherCounterparty string

const (
	ToClient VoucherCounterparty = "CLIENT"
	ToVendor VoucherCounterparty = "VENDOR"
	ToStaff  VoucherCounterparty = "STAFF"
	ToOther  VoucherCounterparty = "OTHER"
)

// Voucher is a simplified single-purpose transaction descriptor: one amount,
// one cash/bank account, one counter account. It is projected 1:1 into a
// two-line JournalEntry and does not persist independently of that
// projection.
type Voucher struct {
	VoucherID        string              `json:"voucherID"`   // Primary Key (e.g., UUID)
	VoucherType      VoucherType         `json:"voucherType"` // PAYMENT, RECEIPT or DEPOSIT
	VoucherDate      time.Time           `json:"voucherDate"`
	Amount           decimal.Decimal     `json:"amount"`           // Strictly positive
	CashAccountID    string              `json:"cashAccountID"`    // Bank/cash account, always involved
	CounterAccountID string              `json:"counterAccountID"` // Expense account (PAYMENT) or income account (RECEIPT/DEPOSIT)
	VoucherTo        VoucherCounterparty `json:"voucherTo"`
	Narration        string              `json:"narration"` // Nullable user description
	EntryID          string              `json:"entryID"`   // FK -> JournalEntry once posted
	AuditFields
}
