package services

import (
	"context"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountWriterSvc defines the atomic account-mutation operations
type AccountWriterSvc interface {
	// CreateAccount opens an account for an existing customer and records its initial deposit.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// TransferFunds moves funds between two accounts and returns the debit-side entry.
	TransferFunds(ctx context.Context, req dto.TransferFundsRequest) (*domain.Transaction, error)
}

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetBalance returns the current balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetAccountTransactions returns the account's transaction log in insertion order.
	GetAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	AccountWriterSvc
	AccountReaderSvc
}
