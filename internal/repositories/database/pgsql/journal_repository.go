package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
	"github.com/openbooks-hq/openbooks_backend/internal/utils/mapping"
	"github.com/openbooks-hq/openbooks_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_date, description, reference, currency_code, status,
	reversed_by_entry_id, reverses_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository persists journal entries and their lines.
type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPgxJournalRepository creates a new journal repository.
func NewPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists a validated entry, its lines and the account balance
// deltas in one database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.saveEntryInTx(ctx, tx, entry, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// saveEntryInTx inserts the entry header and lines and applies balance
// deltas using the caller's transaction. Shared with the voucher repository
// so vouchers and their projected entries commit together.
func (r *PgxJournalRepository) saveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID, m.EntryDate, m.Description, m.Reference, m.CurrencyCode, m.Status,
		m.ReversedByEntryID, m.ReversesEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
		return err
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range mapping.ToModelTransactionLines(entry.Lines) {
		batch.Queue(lineQuery, line.LineID, line.EntryID, line.AccountID, line.Debit, line.Credit, line.Description, line.Position)
	}
	results := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+m.EntryID, err)
		}
	}
	return results.Close()
}

// SaveReversal persists the reversal entry, links and marks the original
// REVERSED, and applies the negated balance deltas atomically.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.saveEntryInTx(ctx, tx, reversal, balanceChanges); err != nil {
		return err
	}

	markQuery := `
		UPDATE journal_entries
		SET status = $2, reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, markQuery,
		original.EntryID, models.Reversed, reversal.EntryID,
		reversal.CreatedAt, reversal.CreatedBy, models.Posted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race with a concurrent reversal.
		return fmt.Errorf("%w: entry %s is no longer POSTED", apperrors.ErrValidation, original.EntryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header with its lines in display order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	headerQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, headerQuery, entryID).Scan(
		&m.EntryID, &m.EntryDate, &m.Description, &m.Reference, &m.CurrencyCode, &m.Status,
		&m.ReversedByEntryID, &m.ReversesEntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+entryID, err)
	}

	lines, err := r.findLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(m, lines[entryID])
	return &entry, nil
}

// ListEntries returns a keyset page of entries ordered by entry date then
// creation time, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	args := []interface{}{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` WHERE (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID, &m.EntryDate, &m.Description, &m.Reference, &m.CurrencyCode, &m.Status,
			&m.ReversedByEntryID, &m.ReversesEntryID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to iterate journal entry rows", err)
	}

	var token string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
	}

	entryIDs := make([]string, len(headers))
	for i, h := range headers {
		entryIDs[i] = h.EntryID
	}
	lines, err := r.findLines(ctx, entryIDs)
	if err != nil {
		return nil, "", err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, token, nil
}

// findLines fetches lines for a set of entries, grouped by entry and ordered
// by position.
func (r *PgxJournalRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]models.TransactionLine, error) {
	out := make(map[string][]models.TransactionLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, position
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.TransactionLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal line rows", err)
	}
	return out, nil
}
