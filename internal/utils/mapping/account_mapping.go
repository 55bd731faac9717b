package mapping

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
)

// ToModelAccount converts a domain account for persistence.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:    a.AccountID,
		Name:         a.Name,
		AccountType:  models.AccountType(a.AccountType),
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
		Balance:      a.Balance,
		AuditFields:  ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainAccount converts a persisted account to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		IsActive:     m.IsActive,
		Balance:      m.Balance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
