package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// TransactionLineRequest is one candidate row of a journal entry form.
// Deliberately no binding constraints: malformed rows must reach the
// validator so the caller gets the complete structured error set instead of
// a generic 400.
type TransactionLineRequest struct {
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// ValidateEntryRequest is the dry-run validation input for the entry form.
type ValidateEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate"`
	Description string                   `json:"description"`
	Reference   string                   `json:"reference"`
	Lines       []TransactionLineRequest `json:"lines"`
}

// CreateJournalEntryRequest is the submission payload for a new entry. The
// service re-runs full validation regardless of what binding lets through.
type CreateJournalEntryRequest struct {
	EntryDate    time.Time                `json:"entryDate" binding:"required"`
	Description  string                   `json:"description" binding:"required"`
	Reference    string                   `json:"reference"`
	CurrencyCode string                   `json:"currencyCode" binding:"required,len=3"`
	Lines        []TransactionLineRequest `json:"lines" binding:"required"`
}

// ToDomainLines converts request rows into domain candidate lines,
// preserving order.
func ToDomainLines(lines []TransactionLineRequest) []domain.TransactionLine {
	out := make([]domain.TransactionLine, len(lines))
	for i, l := range lines {
		out[i] = domain.TransactionLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}

// TransactionLineResponse is one persisted row of an entry.
type TransactionLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                    `json:"entryID"`
	EntryDate         time.Time                 `json:"entryDate"`
	Description       string                    `json:"description"`
	Reference         string                    `json:"reference,omitempty"`
	CurrencyCode      string                    `json:"currencyCode"`
	Status            domain.EntryStatus        `json:"status"`
	Lines             []TransactionLineResponse `json:"lines"`
	ReversedByEntryID string                    `json:"reversedByEntryID,omitempty"`
	ReversesEntryID   string                    `json:"reversesEntryID,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	CreatedBy         string                    `json:"createdBy"`
}

// ListJournalEntriesResponse is a page of entries plus the next-page token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ToTransactionLineResponse converts a domain line to its response DTO.
func ToTransactionLineResponse(l *domain.TransactionLine) TransactionLineResponse {
	return TransactionLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalEntryResponse converts a domain entry to its response DTO.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	lines := make([]TransactionLineResponse, len(j.Lines))
	for i := range j.Lines {
		lines[i] = ToTransactionLineResponse(&j.Lines[i])
	}
	return JournalEntryResponse{
		EntryID:           j.EntryID,
		EntryDate:         j.EntryDate,
		Description:       j.Description,
		Reference:         j.Reference,
		CurrencyCode:      j.CurrencyCode,
		Status:            j.Status,
		Lines:             lines,
		ReversedByEntryID: j.ReversedByEntryID,
		ReversesEntryID:   j.ReversesEntryID,
		CreatedAt:         j.CreatedAt,
		CreatedBy:         j.CreatedBy,
	}
}

// ToListJournalEntriesResponse converts a page of domain entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken string) ListJournalEntriesResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{Entries: out, NextToken: nextToken}
}
