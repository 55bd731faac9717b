package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

// reportingService provides read-only aggregates over posted entries.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance aggregates per-account debit/credit totals as of a date.
// Because every posting is balance-checked, grand totals must match; a
// mismatch indicates ledger corruption and is logged loudly but still
// reported, not hidden.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.TrialBalanceRows(ctx, asOf)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{
		AsOf:        asOf,
		Rows:        make([]dto.TrialBalanceRowResponse, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = dto.ToTrialBalanceRowResponse(row)
		resp.TotalDebit = resp.TotalDebit.Add(row.TotalDebit)
		resp.TotalCredit = resp.TotalCredit.Add(row.TotalCredit)
	}
	resp.Balanced = resp.TotalDebit.Equal(resp.TotalCredit)

	if !resp.Balanced {
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", resp.TotalDebit.String()),
			slog.String("total_credit", resp.TotalCredit.String()),
		)
	}

	return resp, nil
}
