package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// TransactionLine is one row of a multi-line journal entry. A well-formed
// line carries exactly one of Debit/Credit strictly positive and the other
// exactly zero; enforcement lives in the accounting package.
type TransactionLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (e.g., UUID); empty on candidate lines
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry.entryID; empty on candidate lines
	AccountID   string          `json:"accountID"`   // FK -> Account.accountID (Not Null)
	Debit       decimal.Decimal `json:"debit"`       // Non-negative
	Credit      decimal.Decimal `json:"credit"`      // Non-negative
	Description string          `json:"description"` // Nullable per-line memo
}

// JournalEntry represents a single, balanced financial event composed of an
// ordered sequence of transaction lines. Once posted an entry is never
// mutated in place; edits produce a new candidate that is re-validated from
// scratch, and corrections are posted as reversing entries.
type JournalEntry struct {
	EntryID      string            `json:"entryID"`      // Primary Key (e.g., UUID)
	EntryDate    time.Time         `json:"entryDate"`    // Date the event occurred
	Description  string            `json:"description"`  // User description (Not Null)
	Reference    string            `json:"reference"`    // Nullable external reference (cheque no, invoice no)
	CurrencyCode string            `json:"currencyCode"` // Primary currency of the entry (Not Null)
	Status       EntryStatus       `json:"status"`       // Default: Posted
	Lines        []TransactionLine `json:"lines"`        // Ordered as entered; order is display-only
	// Set when this entry has been reversed, or is itself a reversal.
	ReversedByEntryID string `json:"reversedByEntryID,omitempty"`
	ReversesEntryID   string `json:"reversesEntryID,omitempty"`
	AuditFields
}

// EntryMetadata is the entry-level input that accompanies candidate lines
// through validation. It never influences the balance computation.
type EntryMetadata struct {
	EntryDate   time.Time `json:"entryDate"`
	Description string    `json:"description"`
	Reference   string    `json:"reference"`
}
