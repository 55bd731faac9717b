package mapping

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
)

// ToModelUser converts a domain user for persistence.
func ToModelUser(u domain.User) models.User {
	return models.User{
		UserID:       u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		AuditFields:  ToModelAuditFields(u.AuditFields),
	}
}

// ToDomainUser converts a persisted user to the domain shape.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
