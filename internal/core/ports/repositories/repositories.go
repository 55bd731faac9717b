package repositories

// RepositoryContainer aggregates every repository facade for wiring.
type RepositoryContainer struct {
	Account   AccountRepositoryFacade
	Journal   JournalRepositoryFacade
	Voucher   VoucherRepositoryFacade
	User      UserRepositoryFacade
	Reporting ReportingRepositoryFacade
}
