package mapping

import (
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	"github.com/trustbooks/trust_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		CurrencyCode: d.CurrencyCode,
		Description:  d.Description,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		Balance:      d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		Balance:      m.Balance,
	}
}
