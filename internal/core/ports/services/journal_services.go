package services

import (
	"context"

	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// JournalSvcFacade defines the journal entry operations exposed to handlers.
type JournalSvcFacade interface {
	// ValidateEntry is the dry-run used by the entry form on every edit. It
	// is pure: no persistence is touched and every violation is reported.
	ValidateEntry(ctx context.Context, req dto.ValidateEntryRequest) accounting.Result
	// CreateJournal validates and persists a new entry. Validation failures
	// are returned as *EntryValidationError carrying the full result.
	CreateJournal(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetJournal(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListJournals(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error)
	// ReverseJournal posts a mirror entry and marks both entries.
	ReverseJournal(ctx context.Context, entryID string, creatorUserID string) (*domain.JournalEntry, error)
}

// VoucherSvcFacade defines the voucher operations exposed to handlers.
type VoucherSvcFacade interface {
	// PreviewVoucher projects the voucher without persisting anything.
	PreviewVoucher(ctx context.Context, req dto.PreviewVoucherRequest) dto.VoucherPreviewResponse
	// PostVoucher projects, validates and persists the voucher together
	// with its projected journal entry.
	PostVoucher(ctx context.Context, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error)
	GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error)
}
