package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
)

// PgxReportingRepository serves read-only aggregate queries.
type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new reporting repository.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// TrialBalanceRows aggregates per-account debit/credit totals over POSTED
// entries dated on or before asOf. Reversed entries still contribute: their
// reversal lines cancel them arithmetically, which keeps the audit trail
// visible in the per-account totals.
func (r *PgxReportingRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date <= $1
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name, a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance", err)
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType models.AccountType
		if err := rows.Scan(&row.AccountID, &row.AccountName, &accountType, &row.TotalDebit, &row.TotalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate trial balance rows", err)
	}
	return out, nil
}
