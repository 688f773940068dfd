package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// CreateTransactionRequest defines a single line within a journal entry request.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,dgt0"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// CreateJournalRequest defines the data needed to create a new journal entry.
type CreateJournalRequest struct {
	Date         time.Time                  `json:"date" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// RecordExpenseRequest defines the data for the expense posting shorthand.
// The expense account is debited and the ledger account credited.
type RecordExpenseRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	LedgerAccountID  string          `json:"ledgerAccountID" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CaseID           *string         `json:"caseID"`
}

// RecordIncomeRequest defines the data for the income posting shorthand.
// The ledger account is debited and the revenue account credited.
type RecordIncomeRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	LedgerAccountID  string          `json:"ledgerAccountID" binding:"required"`
	RevenueAccountID string          `json:"revenueAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CaseID           *string         `json:"caseID"`
}

// RecordTransferRequest defines the data for moving funds between two asset accounts.
type RecordTransferRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// ReverseJournalRequest defines the data needed to reverse a posted journal.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"` // DEBIT or CREDIT
	Notes           string          `json:"notes,omitempty"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               time.Time             `json:"date"`
	Description        string                `json:"description"`
	CurrencyCode       string                `json:"currencyCode"`
	Status             domain.JournalStatus  `json:"status"`
	Amount             decimal.Decimal       `json:"amount"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	SourceType         *string               `json:"sourceType,omitempty"`
	SourceID           *string               `json:"sourceID,omitempty"`
	Transactions       []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	Limit               int     `form:"limit,default=20"`
	NextToken           *string `form:"nextToken"`
	IncludeReversals    bool    `form:"includeReversals,default=true"`
	IncludeTransactions bool    `form:"includeTransactions,default=false"`
}

// ListJournalsResponse wraps a page of journals with the continuation token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		JournalID:       txn.JournalID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Notes:           txn.Notes,
		RunningBalance:  txn.RunningBalance,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Description:        j.Description,
		CurrencyCode:       j.CurrencyCode,
		Status:             j.Status,
		Amount:             j.Amount,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		SourceType:         j.SourceType,
		SourceID:           j.SourceID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	if len(j.Transactions) > 0 {
		resp.Transactions = ToTransactionResponses(j.Transactions)
	}
	return resp
}
