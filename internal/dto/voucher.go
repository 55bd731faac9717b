package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// PreviewVoucherRequest is the voucher form's live-preview input. Like the
// entry dry-run, it carries no binding constraints so every precondition
// violation comes back as a structured voucher error.
type PreviewVoucherRequest struct {
	VoucherType      string          `json:"voucherType"`
	VoucherDate      time.Time       `json:"voucherDate"`
	Amount           decimal.Decimal `json:"amount"`
	CashAccountID    string          `json:"cashAccountID"`
	CounterAccountID string          `json:"counterAccountID"`
	VoucherTo        string          `json:"voucherTo"`
	Narration        string          `json:"narration"`
}

// PostVoucherRequest is the submission payload. Submission is strict: the
// form only enables it once the preview is clean, so binding failures here
// are caller bugs.
type PostVoucherRequest struct {
	VoucherType      string          `json:"voucherType" binding:"required,oneof=PAYMENT RECEIPT DEPOSIT"`
	VoucherDate      time.Time       `json:"voucherDate" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"decimalpositive"`
	CashAccountID    string          `json:"cashAccountID" binding:"required"`
	CounterAccountID string          `json:"counterAccountID" binding:"required"`
	VoucherTo        string          `json:"voucherTo" binding:"omitempty,oneof=CLIENT VENDOR STAFF OTHER"`
	Narration        string          `json:"narration"`
}

// ToDomainVoucher converts a preview request to a domain voucher.
func (r PreviewVoucherRequest) ToDomainVoucher() domain.Voucher {
	return domain.Voucher{
		VoucherType:      domain.VoucherType(r.VoucherType),
		VoucherDate:      r.VoucherDate,
		Amount:           r.Amount,
		CashAccountID:    r.CashAccountID,
		CounterAccountID: r.CounterAccountID,
		VoucherTo:        domain.VoucherCounterparty(r.VoucherTo),
		Narration:        r.Narration,
	}
}

// ToDomainVoucher converts a post request to a domain voucher.
func (r PostVoucherRequest) ToDomainVoucher() domain.Voucher {
	return domain.Voucher{
		VoucherType:      domain.VoucherType(r.VoucherType),
		VoucherDate:      r.VoucherDate,
		Amount:           r.Amount,
		CashAccountID:    r.CashAccountID,
		CounterAccountID: r.CounterAccountID,
		VoucherTo:        domain.VoucherCounterparty(r.VoucherTo),
		Narration:        r.Narration,
	}
}

// VoucherPreviewResponse carries the projected two-line entry, or the
// precondition violations when projection was not possible. Validation is
// included for the valid case so the form can show running totals.
type VoucherPreviewResponse struct {
	Lines         []TransactionLineResponse `json:"lines,omitempty"`
	VoucherErrors []accounting.VoucherError `json:"voucherErrors,omitempty"`
	Validation    *accounting.Result        `json:"validation,omitempty"`
}

// VoucherResponse defines the data returned for a posted voucher.
type VoucherResponse struct {
	VoucherID        string          `json:"voucherID"`
	VoucherType      string          `json:"voucherType"`
	VoucherDate      time.Time       `json:"voucherDate"`
	Amount           decimal.Decimal `json:"amount"`
	CashAccountID    string          `json:"cashAccountID"`
	CounterAccountID string          `json:"counterAccountID"`
	VoucherTo        string          `json:"voucherTo,omitempty"`
	Narration        string          `json:"narration,omitempty"`
	EntryID          string          `json:"entryID"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToVoucherResponse converts a domain voucher to its response DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:        v.VoucherID,
		VoucherType:      string(v.VoucherType),
		VoucherDate:      v.VoucherDate,
		Amount:           v.Amount,
		CashAccountID:    v.CashAccountID,
		CounterAccountID: v.CounterAccountID,
		VoucherTo:        string(v.VoucherTo),
		Narration:        v.Narration,
		EntryID:          v.EntryID,
		CreatedAt:        v.CreatedAt,
		CreatedBy:        v.CreatedBy,
	}
}
