package models

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is the persistence shape of a chart-of-accounts entry.
type Account struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}
