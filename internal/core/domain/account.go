package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (e.g., UUID)
	Name         string          `json:"name"`         // User-defined name
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code (Not Null)
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Soft delete or status flag
	Balance      decimal.Decimal `json:"balance"`      // Persisted account balance
	AuditFields
}
