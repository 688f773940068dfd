package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// AccountLedgerParams defines query parameters for an account's ledger view.
type AccountLedgerParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
}

// LedgerLineResponse is a single row in an account's ledger view.
type LedgerLineResponse struct {
	TransactionID      string          `json:"transactionID"`
	JournalID          string          `json:"journalID"`
	JournalDate        time.Time       `json:"journalDate"`
	JournalDescription string          `json:"journalDescription"`
	Amount             decimal.Decimal `json:"amount"`
	TransactionType    string          `json:"transactionType"`
	Notes              string          `json:"notes,omitempty"`
	RunningBalance     decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse wraps an account's transaction history with its
// cached current balance.
type AccountLedgerResponse struct {
	AccountID      string               `json:"accountID"`
	CurrentBalance decimal.Decimal      `json:"currentBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
}

// ToLedgerLineResponse converts a domain.Transaction to a ledger row DTO.
func ToLedgerLineResponse(txn *domain.Transaction) LedgerLineResponse {
	return LedgerLineResponse{
		TransactionID:      txn.TransactionID,
		JournalID:          txn.JournalID,
		JournalDate:        txn.JournalDate,
		JournalDescription: txn.JournalDescription,
		Amount:             txn.Amount,
		TransactionType:    string(txn.TransactionType),
		Notes:              txn.Notes,
		RunningBalance:     txn.RunningBalance,
	}
}

// ToLedgerLineResponses converts a slice of domain.Transaction to ledger rows.
func ToLedgerLineResponses(txns []domain.Transaction) []LedgerLineResponse {
	lines := make([]LedgerLineResponse, len(txns))
	for i, txn := range txns {
		lines[i] = ToLedgerLineResponse(&txn)
	}
	return lines
}
