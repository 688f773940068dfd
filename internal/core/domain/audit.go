package domain

import "time"

// AuditEvent is a structured who-did-what record emitted by the core. The
// audit sink owns storage; delivery failures never roll back a financial
// posting.
type AuditEvent struct {
	UserID     string         `json:"user_id"`
	Action     string         `json:"action"` // e.g. "journal.create", "check.confirm"
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
