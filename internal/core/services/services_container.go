package services

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/accounting"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository container.
// The same validator instance (and therefore the same tolerance) is shared
// by the journal and voucher surfaces.
func NewServiceContainer(repos *portsrepo.RepositoryContainer, validator accounting.Validator, auth AuthConfig) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account)
	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   NewJournalService(repos.Journal, accountSvc, validator),
		Voucher:   NewVoucherService(repos.Voucher, accountSvc, validator),
		User:      NewUserService(repos.User, auth),
		Reporting: NewReportingService(repos.Reporting),
	}
}
