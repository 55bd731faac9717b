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
)

const voucherColumns = `voucher_id, voucher_type, voucher_date, amount, cash_account_id, counter_account_id,
	voucher_to, narration, entry_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxVoucherRepository persists vouchers together with their projected
// journal entries.
type PgxVoucherRepository struct {
	BaseRepository
	journalRepo *PgxJournalRepository
}

// NewPgxVoucherRepository creates a new voucher repository.
func NewPgxVoucherRepository(pool *pgxpool.Pool, journalRepo *PgxJournalRepository) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// SaveVoucher writes the voucher row and its projected entry in one
// database transaction; either both land or neither does.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.journalRepo.saveEntryInTx(ctx, tx, entry, balanceChanges); err != nil {
		return err
	}

	m := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.VoucherID, m.VoucherType, m.VoucherDate, m.Amount, m.CashAccountID, m.CounterAccountID,
		m.VoucherTo, m.Narration, m.EntryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert voucher "+m.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a posted voucher.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	var m models.Voucher
	err := r.Pool.QueryRow(ctx, query, voucherID).Scan(
		&m.VoucherID, &m.VoucherType, &m.VoucherDate, &m.Amount, &m.CashAccountID, &m.CounterAccountID,
		&m.VoucherTo, &m.Narration, &m.EntryID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
		}
		return nil, apperrors.NewAppError(500, "failed to query voucher "+voucherID, err)
	}
	voucher := mapping.ToDomainVoucher(m)
	return &voucher, nil
}
