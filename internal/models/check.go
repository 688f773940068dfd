package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckItemStatus is the state of a disbursement queue item.
type CheckItemStatus string

const (
	CheckQueued     CheckItemStatus = "QUEUED"
	CheckPreviewing CheckItemStatus = "PREVIEWING"
	CheckPrinted    CheckItemStatus = "PRINTED"
	CheckConfirmed  CheckItemStatus = "CONFIRMED"
	CheckCancelled  CheckItemStatus = "CANCELLED"
)

// RegisteredCheckStatus tracks a registered check after issue.
type RegisteredCheckStatus string

const (
	CheckIssued  RegisteredCheckStatus = "ISSUED"
	CheckCleared RegisteredCheckStatus = "CLEARED"
	CheckVoid    RegisteredCheckStatus = "VOID"
)

// CheckQueueItem is the database representation of a disbursement in progress.
type CheckQueueItem struct {
	CheckItemID       string          `json:"checkItemID"`
	LedgerAccountID   string          `json:"ledgerAccountID"`
	ExpenseAccountID  string          `json:"expenseAccountID"`
	PayeeEntityID     string          `json:"payeeEntityID"`
	CaseID            *string         `json:"caseID,omitempty"`
	CheckNumber       string          `json:"checkNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Memo              string          `json:"memo"`
	CheckDate         time.Time       `json:"checkDate"`
	AmountWords       string          `json:"amountWords"`
	PayeeAddress      string          `json:"payeeAddress"`
	Status            CheckItemStatus `json:"status"`
	IsRegistered      bool            `json:"isRegistered"`
	RegisteredCheckID *string         `json:"registeredCheckID,omitempty"`
	PreviewedAt       *time.Time      `json:"previewedAt,omitempty"`
	PrintedAt         *time.Time      `json:"printedAt,omitempty"`
	CancelReason      string          `json:"cancelReason,omitempty"`
	AuditFields
}

// RegisteredCheck is the database representation of a durable disbursement.
type RegisteredCheck struct {
	CheckID         string                `json:"checkID"`
	LedgerAccountID string                `json:"ledgerAccountID"`
	PayeeEntityID   string                `json:"payeeEntityID"`
	CaseID          *string               `json:"caseID,omitempty"`
	CheckNumber     string                `json:"checkNumber"`
	Amount          decimal.Decimal       `json:"amount"`
	Memo            string                `json:"memo"`
	CheckDate       time.Time             `json:"checkDate"`
	JournalID       string                `json:"journalID"`
	Status          RegisteredCheckStatus `json:"status"`
	AuditFields
}
