package services

import (
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
)

// NewServiceContainer wires all services from the repository provider.
func NewServiceContainer(repos ports.RepositoryProvider) *ports.ServiceContainer {
	return &ports.ServiceContainer{
		Ledger:  NewLedgerService(repos.AccountRepo, repos.LedgerRepo),
		Account: NewAccountService(repos.AccountRepo, repos.BranchRepo),
		Branch:  NewBranchService(repos.BranchRepo, repos.AccountRepo),
		User:    NewUserService(repos.UserRepo, repos.BranchRepo),
		Metrics: NewMetricsService(repos.MetricsRepo),
	}
}
