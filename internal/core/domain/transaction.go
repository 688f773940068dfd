package domain

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

// Transaction represents a single line item within a Journal, affecting one
// account. Amount is always positive; the direction comes from
// TransactionType combined with the account's type.
//
// Invariant per journal: the sum of debit amounts equals the sum of credit
// amounts.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	JournalID       string          `json:"journalID"`     // FK -> Journal (Not Null)
	AccountID       string          `json:"accountID"`     // FK -> Account (Not Null)
	Amount          decimal.Decimal `json:"amount"`        // Positive value
	TransactionType TransactionType `json:"transactionType"`
	CurrencyCode    string          `json:"currencyCode"` // Matches the journal currency
	Notes           string          `json:"notes"`        // Nullable
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line

	// Denormalized journal fields populated on ledger reads.
	JournalDate        time.Time `json:"journalDate,omitempty"`
	JournalDescription string    `json:"journalDescription,omitempty"`
}
