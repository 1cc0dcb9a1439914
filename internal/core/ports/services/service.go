package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is what the handlers receive at route registration.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleAuth  GoogleAuthSvcFacade
	Transaction TransactionSvcFacade
	Rules       RuleEvaluator
	Reporting   ReportingSvcFacade
}
