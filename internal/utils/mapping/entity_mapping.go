package mapping

import (
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	"github.com/trustbooks/trust_ledger_app/internal/models"
)

// ToDomainEntity converts a model Entity to a domain Entity.
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:     m.EntityID,
		Name:         m.Name,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		PostalCode:   m.PostalCode,
		IsPayable:    m.IsPayable,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
