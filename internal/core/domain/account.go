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
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account. Trust/bank sub-ledgers are ASSET
// accounts; disbursement categories are EXPENSE accounts.
//
// Balance is a materialized cache of the signed sum of the account's
// committed journal lines. It is mutated only inside posting transactions,
// never edited directly.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	Name         string          `json:"name"`         // User-defined name
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // ISO code, single-currency deployment
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Soft delete flag
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached current balance
}
