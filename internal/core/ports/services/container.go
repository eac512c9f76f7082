package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Client      ClientSvcFacade
	Invoice     InvoiceSvcFacade
	Reporting   ReportingSvcFacade
	User        UserSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
