package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the persistence shape of a posted voucher. EntryID links to the
// journal entry the voucher was projected into.
type Voucher struct {
	VoucherID        string          `json:"voucherID"`
	VoucherType      string          `json:"voucherType"`
	VoucherDate      time.Time       `json:"voucherDate"`
	Amount           decimal.Decimal `json:"amount"`
	CashAccountID    string          `json:"cashAccountID"`
	CounterAccountID string          `json:"counterAccountID"`
	VoucherTo        string          `json:"voucherTo"`
	Narration        string          `json:"narration"`
	EntryID          string          `json:"entryID"`
	AuditFields
}
