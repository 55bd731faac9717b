package services

// ServiceContainer aggregates every service facade for route registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Voucher   VoucherSvcFacade
	User      UserSvcFacade
	Reporting ReportingSvcFacade
}
