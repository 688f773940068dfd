package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckItemStatus is the state of a disbursement queue item.
//
// Allowed transitions:
//
//	QUEUED -> PREVIEWING -> PRINTED -> CONFIRMED (terminal, registers money movement)
//	QUEUED|PREVIEWING|PRINTED -> CANCELLED       (terminal, no financial effect)
//
// CONFIRMED is the only financially consequential transition; it creates the
// RegisteredCheck and posts the backing journal in one database transaction.
type CheckItemStatus string

const (
	CheckQueued     CheckItemStatus = "QUEUED"
	CheckPreviewing CheckItemStatus = "PREVIEWING"
	CheckPrinted    CheckItemStatus = "PRINTED"
	CheckConfirmed  CheckItemStatus = "CONFIRMED"
	CheckCancelled  CheckItemStatus = "CANCELLED"
)

// CanTransitionTo reports whether the state machine permits moving from the
// current status to target.
func (s CheckItemStatus) CanTransitionTo(target CheckItemStatus) bool {
	switch target {
	case CheckPreviewing:
		return s == CheckQueued || s == CheckPreviewing
	case CheckPrinted:
		return s == CheckQueued || s == CheckPreviewing || s == CheckPrinted
	case CheckConfirmed:
		return s == CheckPrinted
	case CheckCancelled:
		return s == CheckQueued || s == CheckPreviewing || s == CheckPrinted
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s CheckItemStatus) IsTerminal() bool {
	return s == CheckConfirmed || s == CheckCancelled
}

// CheckQueueItem is a disbursement in progress. IsRegistered is set exactly
// once, at the CONFIRMED transition, and is the durable guard against
// double-posting.
type CheckQueueItem struct {
	CheckItemID      string          `json:"checkItemID"`      // Primary Key (UUID)
	LedgerAccountID  string          `json:"ledgerAccountID"`  // Paying trust/bank ledger (ASSET account)
	ExpenseAccountID string          `json:"expenseAccountID"` // Category the disbursement is charged to
	PayeeEntityID    string          `json:"payeeEntityID"`    // FK -> Entity
	CaseID           *string         `json:"caseID,omitempty"` // Optional matter/case reference
	CheckNumber      string          `json:"checkNumber"`
	Amount           decimal.Decimal `json:"amount"` // Positive
	Memo             string          `json:"memo"`
	CheckDate        time.Time       `json:"checkDate"`
	AmountWords      string          `json:"amountWords"`  // Printed legend, e.g. "Fifty and 00/100 Dollars"
	PayeeAddress     string          `json:"payeeAddress"` // Formatted address block
	Status           CheckItemStatus `json:"status"`
	IsRegistered     bool            `json:"isRegistered"`
	RegisteredCheckID *string        `json:"registeredCheckID,omitempty"` // Set at confirm
	PreviewedAt      *time.Time      `json:"previewedAt,omitempty"`
	PrintedAt        *time.Time      `json:"printedAt,omitempty"`
	CancelReason     string          `json:"cancelReason,omitempty"`
	AuditFields
}

// RegisteredCheckStatus tracks a registered check after issue. These later
// status changes do not touch the ledger.
type RegisteredCheckStatus string

const (
	CheckIssued  RegisteredCheckStatus = "ISSUED"
	CheckCleared RegisteredCheckStatus = "CLEARED"
	CheckVoid    RegisteredCheckStatus = "VOID"
)

// RegisteredCheck is the durable disbursement record, created exactly once
// at confirm time from a CheckQueueItem. JournalID links the balanced
// journal entry that moved the money.
type RegisteredCheck struct {
	CheckID         string                `json:"checkID"` // Primary Key (UUID)
	LedgerAccountID string                `json:"ledgerAccountID"`
	PayeeEntityID   string                `json:"payeeEntityID"`
	CaseID          *string               `json:"caseID,omitempty"`
	CheckNumber     string                `json:"checkNumber"`
	Amount          decimal.Decimal       `json:"amount"`
	Memo            string                `json:"memo"`
	CheckDate       time.Time             `json:"checkDate"`
	JournalID       string                `json:"journalID"` // FK -> Journal backing the posting
	Status          RegisteredCheckStatus `json:"status"`
	AuditFields
}
