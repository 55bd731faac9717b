package services

import (
	"context"
	"time"

	"github.com/openbooks-hq/openbooks_backend/internal/dto"
)

// ReportingSvcFacade defines read-only report queries.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
