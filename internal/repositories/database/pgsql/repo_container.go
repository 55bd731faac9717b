package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
)

// NewRepositoryContainer wires every pgx repository against the shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	accountRepo := NewPgxAccountRepository(pool)
	journalRepo := NewPgxJournalRepository(pool, accountRepo)
	return &portsrepo.RepositoryContainer{
		Account:   accountRepo,
		Journal:   journalRepo,
		Voucher:   NewPgxVoucherRepository(pool, journalRepo),
		User:      NewPgxUserRepository(pool),
		Reporting: NewPgxReportingRepository(pool),
	}
}
