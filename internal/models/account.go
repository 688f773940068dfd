package models

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the database representation of a ledger account.
type Account struct {
	AccountID    string      `json:"accountID"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	Description  string      `json:"description"`
	IsActive     bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached signed sum of committed lines
}
