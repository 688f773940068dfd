package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal is the database representation of a balanced financial event.
type Journal struct {
	JournalID          string        `json:"journalID"`
	JournalDate        time.Time     `json:"journalDate"`
	Description        string        `json:"description"`
	CurrencyCode       string        `json:"currencyCode"`
	Status             JournalStatus `json:"status"`
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"`
	SourceType         *string       `json:"sourceType,omitempty"`
	SourceID           *string       `json:"sourceID,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	AuditFields
}
