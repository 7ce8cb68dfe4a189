package mapping

import (
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/SscSPs/mini_ledger/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		Country:     m.Country,
		AccountIDs:  nonNilIDs(m.AccountIDs),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to a slice of domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
