package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerReader
	accountRepo  portsrepo.AccountReader
}

// NewCustomerService creates a new customer read service.
func NewCustomerService(customerRepo portsrepo.CustomerReader, accountRepo portsrepo.AccountReader) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	s.LogDebug(ctx, "Customers listed", slog.Int("count", len(customers)))
	return customers, nil
}

// GetCustomerByID returns the customer with its account list expanded to full
// account records, in the order the accounts were opened.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.CustomerDetails, error) {
	if err := validateID("customer", customerID); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	details := &domain.CustomerDetails{Customer: *customer, Accounts: []domain.Account{}}
	if len(customer.AccountIDs) == 0 {
		return details, nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, customer.AccountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to expand customer accounts", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to load accounts for customer %s: %w", customerID, err)
	}
	for _, id := range customer.AccountIDs {
		acc, ok := accounts[id]
		if !ok {
			s.LogWarn(ctx, "Customer references missing account",
				slog.String("customer_id", customerID), slog.String("account_id", id))
			continue
		}
		details.Accounts = append(details.Accounts, acc)
	}

	return details, nil
}
