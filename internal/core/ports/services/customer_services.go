package services

import (
	"context"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// CustomerSvcFacade defines read operations for customer data
type CustomerSvcFacade interface {
	// ListCustomers returns every customer sorted by name.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// GetCustomerByID returns a customer with its accounts expanded.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.CustomerDetails, error)
}
