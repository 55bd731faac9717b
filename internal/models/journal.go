package models

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

// JournalEntry is the persistence shape of a journal entry header; lines are
// stored separately in journal_lines.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	EntryDate         time.Time   `json:"entryDate"`
	Description       string      `json:"description"`
	Reference         string      `json:"reference"`
	CurrencyCode      string      `json:"currencyCode"`
	Status            EntryStatus `json:"status"`
	ReversedByEntryID *string     `json:"reversedByEntryID"` // Nullable FK -> journal_entries.entry_id
	ReversesEntryID   *string     `json:"reversesEntryID"`   // Nullable FK -> journal_entries.entry_id
	AuditFields
}

// TransactionLine is the persistence shape of one journal line. Position
// preserves the order the user entered the lines in, for display only.
type TransactionLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Position    int             `json:"position"`
}
