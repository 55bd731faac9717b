package mapping

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain entry header for persistence.
func ToModelJournalEntry(j domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      j.EntryID,
		EntryDate:    j.EntryDate,
		Description:  j.Description,
		Reference:    j.Reference,
		CurrencyCode: j.CurrencyCode,
		Status:       models.EntryStatus(j.Status),
		AuditFields:  ToModelAuditFields(j.AuditFields),
	}
	if j.ReversedByEntryID != "" {
		m.ReversedByEntryID = &j.ReversedByEntryID
	}
	if j.ReversesEntryID != "" {
		m.ReversesEntryID = &j.ReversesEntryID
	}
	return m
}

// ToDomainJournalEntry converts a persisted entry header plus its lines back
// into the domain shape.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.TransactionLine) domain.JournalEntry {
	j := domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Reference:    m.Reference,
		CurrencyCode: m.CurrencyCode,
		Status:       domain.EntryStatus(m.Status),
		Lines:        ToDomainTransactionLines(lines),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ReversedByEntryID != nil {
		j.ReversedByEntryID = *m.ReversedByEntryID
	}
	if m.ReversesEntryID != nil {
		j.ReversesEntryID = *m.ReversesEntryID
	}
	return j
}

// ToModelTransactionLines converts domain lines for persistence, recording
// their display order.
func ToModelTransactionLines(lines []domain.TransactionLine) []models.TransactionLine {
	out := make([]models.TransactionLine, len(lines))
	for i, l := range lines {
		out[i] = models.TransactionLine{
			LineID:      l.LineID,
			EntryID:     l.EntryID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			Position:    i,
		}
	}
	return out
}

// ToDomainTransactionLines converts persisted lines to the domain shape.
// Callers are expected to have ordered them by position.
func ToDomainTransactionLines(lines []models.TransactionLine) []domain.TransactionLine {
	out := make([]domain.TransactionLine, len(lines))
	for i, l := range lines {
		out[i] = domain.TransactionLine{
			LineID:      l.LineID,
			EntryID:     l.EntryID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}
