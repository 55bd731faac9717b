package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
)

// SignedAmount returns the net balance movement a line causes on its
// account, signed by the standard accounting convention:
//
//	DEBIT to ASSET/EXPENSE -> Positive (+)
//	CREDIT to ASSET/EXPENSE -> Negative (-)
//	DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
//	CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
//
// This is used by both services and repositories to keep balance updates and
// reporting consistent.
func SignedAmount(line domain.TransactionLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Income:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}
