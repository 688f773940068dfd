package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's totals in a trial balance
// report. Across all rows the debit and credit totals must net to zero.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
