package repositories

import (
	"context"

	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// EntityReader supplies the existence and capability lookups the core needs
// for payees. Entity CRUD is owned by an external collaborator.
type EntityReader interface {
	// FindEntityByID retrieves an entity by its unique identifier.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
}
