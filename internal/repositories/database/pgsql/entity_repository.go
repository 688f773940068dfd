package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	"github.com/trustbooks/trust_ledger_app/internal/models"
	"github.com/trustbooks/trust_ledger_app/internal/utils/mapping"
)

// PgxEntityRepository reads payee/payer records. Entity CRUD lives with an
// external collaborator; this side only ever looks entities up.
type PgxEntityRepository struct {
	pool *pgxpool.Pool
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityReader {
	return &PgxEntityRepository{pool: pool}
}

var _ portsrepo.EntityReader = (*PgxEntityRepository)(nil)

// FindEntityByID retrieves an entity by its unique identifier.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, name, address_line1, address_line2, city, state, postal_code,
		       is_payable, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`

	var m models.Entity
	err := r.pool.QueryRow(ctx, query, entityID).Scan(
		&m.EntityID,
		&m.Name,
		&m.AddressLine1,
		&m.AddressLine2,
		&m.City,
		&m.State,
		&m.PostalCode,
		&m.IsPayable,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity by ID %s: %w", entityID, err)
	}

	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}
