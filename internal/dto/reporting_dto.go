package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// TrialBalanceRowResponse is one account's totals in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
}

// TrialBalanceResponse is the full trial balance as of a date. Balanced is
// false only if the ledger itself has drifted, which posting-time validation
// is meant to make impossible.
type TrialBalanceResponse struct {
	AsOf        time.Time                 `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
	Balanced    bool                      `json:"balanced"`
}

// ToTrialBalanceRowResponse converts a domain trial balance row.
func ToTrialBalanceRowResponse(r domain.TrialBalanceRow) TrialBalanceRowResponse {
	return TrialBalanceRowResponse{
		AccountID:   r.AccountID,
		AccountName: r.AccountName,
		AccountType: r.AccountType,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}
