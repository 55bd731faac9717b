package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

// VoucherProjectionError carries the voucher precondition violations for a
// rejected posting.
type VoucherProjectionError struct {
	Errors []accounting.VoucherError
}

func (e *VoucherProjectionError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = string(ve)
	}
	return "voucher failed preconditions: " + strings.Join(parts, ", ")
}

func (e *VoucherProjectionError) Unwrap() error {
	return apperrors.ErrValidation
}

// voucherService projects vouchers into journal entries and posts them.
type voucherService struct {
	accountSvc  portssvc.AccountSvcFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
	validator   accounting.Validator
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, accountSvc portssvc.AccountSvcFacade, validator accounting.Validator) portssvc.VoucherSvcFacade {
	return &voucherService{
		accountSvc:  accountSvc,
		voucherRepo: voucherRepo,
		validator:   validator,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// PreviewVoucher runs the projection without persisting anything, returning
// either the two derived lines (plus their validation result, for running
// totals) or the precondition violations.
func (s *voucherService) PreviewVoucher(ctx context.Context, req dto.PreviewVoucherRequest) dto.VoucherPreviewResponse {
	lines, verrs := accounting.ProjectVoucher(req.ToDomainVoucher())
	if len(verrs) > 0 {
		return dto.VoucherPreviewResponse{VoucherErrors: verrs}
	}

	result := s.validator.ValidateEntry(lines, domain.EntryMetadata{
		EntryDate:   req.VoucherDate,
		Description: req.Narration,
	})

	lineResponses := make([]dto.TransactionLineResponse, len(lines))
	for i := range lines {
		lineResponses[i] = dto.ToTransactionLineResponse(&lines[i])
	}
	return dto.VoucherPreviewResponse{Lines: lineResponses, Validation: &result}
}

// PostVoucher projects the voucher, validates the derived entry and persists
// both atomically.
func (s *voucherService) PostVoucher(ctx context.Context, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher := req.ToDomainVoucher()

	lines, verrs := accounting.ProjectVoucher(voucher)
	if len(verrs) > 0 {
		return nil, &VoucherProjectionError{Errors: verrs}
	}

	// Projection guarantees a balanced entry; a failure here means the
	// projector and validator have diverged.
	result := s.validator.ValidateEntry(lines, domain.EntryMetadata{EntryDate: req.VoucherDate})
	if !result.Valid {
		logger.Error("Projected voucher failed validation", slog.Any("result", result))
		return nil, fmt.Errorf("internal error: projected voucher entry did not validate")
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, []string{voucher.CashAccountID, voucher.CounterAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, 2)
	var currencyCode string
	for _, id := range []string{voucher.CashAccountID, voucher.CounterAccountID} {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
		if currencyCode == "" {
			currencyCode = acc.CurrencyCode
		} else if acc.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: cash and counter accounts use different currencies", ErrCurrencyMismatch)
		}
		accountTypes[id] = acc.AccountType
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	voucher.VoucherID = uuid.NewString()
	voucher.EntryID = entryID
	voucher.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	description := voucher.Narration
	if description == "" {
		name := strings.ToLower(string(voucher.VoucherType))
		description = strings.ToUpper(name[:1]) + name[1:] + " voucher"
	}

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryDate:    req.VoucherDate,
		Description:  description,
		Reference:    voucher.VoucherID,
		CurrencyCode: currencyCode,
		Status:       domain.Posted,
		Lines:        lines,
		AuditFields:  voucher.AuditFields,
	}

	balanceChanges, err := balanceChangesFor(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entry, balanceChanges); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("entry_id", entryID),
		slog.String("type", string(voucher.VoucherType)),
		slog.String("amount", voucher.Amount.String()),
	)
	return &voucher, nil
}

// GetVoucher retrieves a posted voucher.
func (s *voucherService) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return s.voucherRepo.FindVoucherByID(ctx, voucherID)
}
