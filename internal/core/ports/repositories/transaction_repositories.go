package repositories

import (
	"context"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// FindTransactionByID retrieves a single log entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID expands an account's transaction list to full
	// records, preserving the list's insertion order.
	ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
}
