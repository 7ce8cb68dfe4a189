package services

import (
	"context"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// TransactionSvcFacade defines read operations for individual log entries
type TransactionSvcFacade interface {
	// GetTransactionByID returns a transaction with origin and destination accounts expanded.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionDetails, error)
}
