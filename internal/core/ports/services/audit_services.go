package services

import (
	"context"

	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// AuditSink publishes audit events for money-moving operations.
// Publishing is best-effort and happens after the database commit; a sink
// failure never rolls back the business operation.
type AuditSink interface {
	// Publish emits a single audit event.
	Publish(ctx context.Context, event domain.AuditEvent) error

	// Close releases any resources held by the sink.
	Close() error
}
