package repositories

import (
	"context"
	"time"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregate queries for reports.
type ReportingRepositoryFacade interface {
	// TrialBalanceRows returns per-account debit/credit totals over POSTED
	// entries dated on or before asOf.
	TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
