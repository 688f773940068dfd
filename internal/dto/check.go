package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// CreateCheckItemRequest defines the data needed to queue a check for disbursement.
type CreateCheckItemRequest struct {
	LedgerAccountID  string          `json:"ledgerAccountID" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	PayeeEntityID    string          `json:"payeeEntityID" binding:"required"`
	CaseID           *string         `json:"caseID"`
	CheckNumber      string          `json:"checkNumber" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Memo             string          `json:"memo"`
	CheckDate        time.Time       `json:"checkDate" binding:"required"`
}

// ConfirmCheckItemRequest defines the data accepted when confirming a printed check.
// FinalCheckNumber lets the operator correct the number after seeing the
// physical check stock.
type ConfirmCheckItemRequest struct {
	FinalCheckNumber *string `json:"finalCheckNumber"`
}

// CancelCheckItemRequest defines the data needed to cancel a queued check.
type CancelCheckItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CheckItemResponse defines the data returned for a disbursement queue item.
type CheckItemResponse struct {
	CheckItemID       string                 `json:"checkItemID"`
	LedgerAccountID   string                 `json:"ledgerAccountID"`
	ExpenseAccountID  string                 `json:"expenseAccountID"`
	PayeeEntityID     string                 `json:"payeeEntityID"`
	CaseID            *string                `json:"caseID,omitempty"`
	CheckNumber       string                 `json:"checkNumber"`
	Amount            decimal.Decimal        `json:"amount"`
	Memo              string                 `json:"memo"`
	CheckDate         time.Time              `json:"checkDate"`
	AmountWords       string                 `json:"amountWords"`
	PayeeAddress      string                 `json:"payeeAddress"`
	Status            domain.CheckItemStatus `json:"status"`
	IsRegistered      bool                   `json:"isRegistered"`
	RegisteredCheckID *string                `json:"registeredCheckID,omitempty"`
	PreviewedAt       *time.Time             `json:"previewedAt,omitempty"`
	PrintedAt         *time.Time             `json:"printedAt,omitempty"`
	CancelReason      string                 `json:"cancelReason,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	CreatedBy         string                 `json:"createdBy"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy     string                 `json:"lastUpdatedBy"`
}

// ListCheckItemsParams holds query parameters for listing queue items.
type ListCheckItemsParams struct {
	Status    *domain.CheckItemStatus `form:"status"`
	Limit     int                     `form:"limit,default=20"`
	NextToken *string                 `form:"nextToken"`
}

// ListCheckItemsResponse wraps a page of queue items with the continuation token.
type ListCheckItemsResponse struct {
	Items     []CheckItemResponse `json:"items"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// RegisteredCheckResponse defines the data returned for a registered check.
type RegisteredCheckResponse struct {
	CheckID         string                       `json:"checkID"`
	LedgerAccountID string                       `json:"ledgerAccountID"`
	PayeeEntityID   string                       `json:"payeeEntityID"`
	CaseID          *string                      `json:"caseID,omitempty"`
	CheckNumber     string                       `json:"checkNumber"`
	Amount          decimal.Decimal              `json:"amount"`
	Memo            string                       `json:"memo"`
	CheckDate       time.Time                    `json:"checkDate"`
	JournalID       string                       `json:"journalID"`
	Status          domain.RegisteredCheckStatus `json:"status"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
}

// ToCheckItemResponse converts a domain.CheckQueueItem to CheckItemResponse DTO.
func ToCheckItemResponse(item *domain.CheckQueueItem) CheckItemResponse {
	return CheckItemResponse{
		CheckItemID:       item.CheckItemID,
		LedgerAccountID:   item.LedgerAccountID,
		ExpenseAccountID:  item.ExpenseAccountID,
		PayeeEntityID:     item.PayeeEntityID,
		CaseID:            item.CaseID,
		CheckNumber:       item.CheckNumber,
		Amount:            item.Amount,
		Memo:              item.Memo,
		CheckDate:         item.CheckDate,
		AmountWords:       item.AmountWords,
		PayeeAddress:      item.PayeeAddress,
		Status:            item.Status,
		IsRegistered:      item.IsRegistered,
		RegisteredCheckID: item.RegisteredCheckID,
		PreviewedAt:       item.PreviewedAt,
		PrintedAt:         item.PrintedAt,
		CancelReason:      item.CancelReason,
		CreatedAt:         item.CreatedAt,
		CreatedBy:         item.CreatedBy,
		LastUpdatedAt:     item.LastUpdatedAt,
		LastUpdatedBy:     item.LastUpdatedBy,
	}
}

// ToCheckItemResponses converts a slice of domain.CheckQueueItem to DTOs.
func ToCheckItemResponses(items []domain.CheckQueueItem) []CheckItemResponse {
	responses := make([]CheckItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToCheckItemResponse(&item)
	}
	return responses
}

// ToRegisteredCheckResponse converts a domain.RegisteredCheck to its DTO.
func ToRegisteredCheckResponse(check *domain.RegisteredCheck) RegisteredCheckResponse {
	return RegisteredCheckResponse{
		CheckID:         check.CheckID,
		LedgerAccountID: check.LedgerAccountID,
		PayeeEntityID:   check.PayeeEntityID,
		CaseID:          check.CaseID,
		CheckNumber:     check.CheckNumber,
		Amount:          check.Amount,
		Memo:            check.Memo,
		CheckDate:       check.CheckDate,
		JournalID:       check.JournalID,
		Status:          check.Status,
		CreatedAt:       check.CreatedAt,
		CreatedBy:       check.CreatedBy,
	}
}
