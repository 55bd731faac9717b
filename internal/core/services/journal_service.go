package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

var (
	ErrEntryMinAccounts   = errors.New("entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrCurrencyMismatch   = errors.New("account currency does not match entry currency")
	ErrDescriptionMissing = errors.New("entry description is required")
	ErrNotPosted          = errors.New("entry must be posted to be reversed")
	ErrAlreadyReversed    = errors.New("entry has already been reversed")
)

// EntryValidationError carries the complete structured validation result for
// a rejected entry so the handler can return every violation at once.
type EntryValidationError struct {
	Result accounting.Result
}

func (e *EntryValidationError) Error() string {
	return fmt.Sprintf("entry failed double-entry validation: %d line error(s), %d entry error(s)",
		len(e.Result.LineErrors), len(e.Result.EntryErrors))
}

func (e *EntryValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// journalService provides journal entry operations on top of the pure
// accounting rules.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
	validator   accounting.Validator
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, validator accounting.Validator) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
		validator:   validator,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ValidateEntry implements the form's dry-run. It never touches persistence:
// account reference validity is a posting-time concern, the form sources its
// account list from the accounts API anyway.
func (s *journalService) ValidateEntry(ctx context.Context, req dto.ValidateEntryRequest) accounting.Result {
	meta := domain.EntryMetadata{
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
	}
	return s.validator.ValidateEntry(dto.ToDomainLines(req.Lines), meta)
}

// CreateJournal validates and persists a new journal entry.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	lines := dto.ToDomainLines(req.Lines)
	meta := domain.EntryMetadata{EntryDate: req.EntryDate, Description: req.Description, Reference: req.Reference}

	result := s.validator.ValidateEntry(lines, meta)
	if !result.Valid {
		return nil, &EntryValidationError{Result: result}
	}

	// A balanced entry against a single account (debit and credit the same
	// account) is formally valid but meaningless; reject it here rather than
	// in the pure validator.
	accountSet := make(map[string]bool)
	for _, line := range lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, fmt.Errorf("%w", ErrEntryMinAccounts)
	}

	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(accountIDs))
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
		if acc.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: account currency %s vs entry currency %s for account %s",
				ErrCurrencyMismatch, acc.CurrencyCode, req.CurrencyCode, id)
		}
		accountTypes[id] = acc.AccountType
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryDate:    req.EntryDate,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.Posted,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	balanceChanges, err := balanceChangesFor(lines, accountTypes)
	if err != nil {
		logger.Error("Error calculating balance changes", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, balanceChanges); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("total", result.TotalDebit.String()))
	return &entry, nil
}

// GetJournal retrieves a single entry with its lines.
func (s *journalService) GetJournal(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

// ListJournals returns a page of entries plus the next-page token.
func (s *journalService) ListJournals(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.journalRepo.ListEntries(ctx, limit, nextToken)
}

// ReverseJournal posts a mirror entry for the original and marks the
// original REVERSED. The original is never mutated beyond its status link;
// the correction is itself a regular, balanced entry.
func (s *journalService) ReverseJournal(ctx context.Context, entryID string, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entryID, original.Status)
	}
	if original.ReversedByEntryID != "" {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyReversed, entryID)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.TransactionLine, len(original.Lines))
	for i, line := range original.Lines {
		reversalLines[i] = domain.TransactionLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryDate:       now,
		Description:     "Reversal of: " + original.Description,
		Reference:       original.Reference,
		CurrencyCode:    original.CurrencyCode,
		Status:          domain.Posted,
		Lines:           reversalLines,
		ReversesEntryID: original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	accountIDs := make([]string, 0, len(reversalLines))
	seen := make(map[string]bool)
	for _, line := range reversalLines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accountsMap))
	for id, acc := range accountsMap {
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := balanceChangesFor(reversalLines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	if err := s.journalRepo.SaveReversal(ctx, *original, reversal, balanceChanges); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversalID))
	return &reversal, nil
}

// balanceChangesFor accumulates the net signed movement per account.
func balanceChangesFor(lines []domain.TransactionLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not known for account ID %s", line.AccountID)
		}
		signed, err := accounting.SignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		if current, ok := changes[line.AccountID]; ok {
			changes[line.AccountID] = current.Add(signed)
		} else {
			changes[line.AccountID] = signed
		}
	}
	return changes, nil
}
