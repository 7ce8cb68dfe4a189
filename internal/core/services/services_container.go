package services

import (
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...LedgerOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:      NewLedgerService(repos, options...),
		Customer:    NewCustomerService(repos.CustomerRepo, repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
	}
}
