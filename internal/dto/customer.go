package dto

import (
	"time"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// CustomerResponse defines the data returned for a customer in listings.
type CustomerResponse struct {
	CustomerID string    `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	Accounts   []string  `json:"accounts"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CustomerDetailsResponse is a customer with its accounts expanded.
type CustomerDetailsResponse struct {
	CustomerID string            `json:"id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	State      string            `json:"state"`
	Country    string            `json:"country"`
	Accounts   []AccountResponse `json:"accounts"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	accountIDs := c.AccountIDs
	if accountIDs == nil {
		accountIDs = []string{}
	}
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		Country:    c.Country,
		Accounts:   accountIDs,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ToCustomerDetailsResponse converts a domain.CustomerDetails to its DTO
func ToCustomerDetailsResponse(d *domain.CustomerDetails) CustomerDetailsResponse {
	return CustomerDetailsResponse{
		CustomerID: d.CustomerID,
		Name:       d.Name,
		Address:    d.Address,
		City:       d.City,
		State:      d.State,
		Country:    d.Country,
		Accounts:   ToListAccountResponse(d.Accounts),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
