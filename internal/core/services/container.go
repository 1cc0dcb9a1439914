package services

import (
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and returns
// the container handed to route registration.
func NewServiceContainer(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, txRepo portsrepo.TransactionRepositoryFacade) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:        NewUserService(userRepo),
		Token:       NewTokenService(cfg),
		GoogleAuth:  NewGoogleAuthService(cfg),
		Transaction: NewTransactionService(txRepo),
		Rules:       NewRuleEvaluator(txRepo, cfg.Rules),
		Reporting:   NewReportingService(txRepo),
	}
}
