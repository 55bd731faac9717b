package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for journal entries
// and their lines. Implementations persist an entry, its lines and the
// resulting account balance deltas atomically.
type JournalRepositoryFacade interface {
	// SaveEntry persists a validated entry with its lines and applies the
	// given signed balance deltas in one database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error
	// SaveReversal persists the reversal entry, marks the original entry
	// REVERSED and applies the negated balance deltas atomically.
	SaveReversal(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// ListEntries returns a page of entries ordered by entry date then
	// creation time descending, plus the token for the next page ("" when
	// exhausted).
	ListEntries(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error)
}

// VoucherRepositoryFacade defines persistence for vouchers, which are always
// stored together with their projected journal entry.
type VoucherRepositoryFacade interface {
	// SaveVoucher persists the voucher, its projected entry and the balance
	// deltas in one database transaction.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
}
