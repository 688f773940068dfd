package domain

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

// Journal represents a single, balanced financial event composed of multiple
// transaction lines. Journals are immutable once committed: corrections are
// made only by posting a reversal journal, never by editing or deleting.
//
// A journal whose OriginalJournalID is set is a reversal entry; its lines
// exactly negate the original's.
type Journal struct {
	JournalID          string          `json:"journalID"`   // Primary Key (UUID)
	JournalDate        time.Time       `json:"journalDate"` // Date the event occurred
	Description        string          `json:"description"`
	CurrencyCode       string          `json:"currencyCode"`
	Status             JournalStatus   `json:"status"`                       // Default: Posted
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`  // Set on reversal journals
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"` // Set on reversed journals
	SourceType         *string         `json:"sourceType,omitempty"`         // Originating business event, e.g. "CHECK"
	SourceID           *string         `json:"sourceID,omitempty"`
	Amount             decimal.Decimal `json:"amount"` // Debit-side total, the journal's economic value
	AuditFields
	Transactions []Transaction `json:"transactions,omitempty"` // Loaded on demand
}

// IsReversal reports whether this journal is a reversal entry.
func (j *Journal) IsReversal() bool {
	return j.OriginalJournalID != nil
}
