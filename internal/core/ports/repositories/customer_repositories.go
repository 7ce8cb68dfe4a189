package repositories

import (
	"context"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// ListCustomers retrieves every customer ordered by name ascending.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// CustomerExists reports whether a customer with the given ID is stored.
	CustomerExists(ctx context.Context, customerID string) (bool, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
}
