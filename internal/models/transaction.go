package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is the database representation of a single journal line.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"` // Positive
	TransactionType TransactionType `json:"transactionType"`
	CurrencyCode    string          `json:"currencyCode"`
	Notes           string          `json:"notes"`
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Balance after this line

	// Joined journal columns populated on ledger reads.
	JournalDate        time.Time `json:"journalDate,omitempty"`
	JournalDescription string    `json:"journalDescription,omitempty"`
}
