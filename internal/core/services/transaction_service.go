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

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	accountRepo     portsrepo.AccountReader
}

// NewTransactionService creates a new transaction read service.
func NewTransactionService(transactionRepo portsrepo.TransactionReader, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID returns the entry with its origin and, for transfers,
// destination accounts expanded.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionDetails, error) {
	if err := validateID("transaction", transactionID); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	ids := []string{txn.OriginID}
	if txn.DestinationID != nil {
		ids = append(ids, *txn.DestinationID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to expand transaction accounts", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to load accounts for transaction %s: %w", transactionID, err)
	}

	details := &domain.TransactionDetails{Transaction: *txn}
	if origin, ok := accounts[txn.OriginID]; ok {
		details.Origin = &origin
	}
	if txn.DestinationID != nil {
		if dest, ok := accounts[*txn.DestinationID]; ok {
			details.Destination = &dest
		}
	}
	return details, nil
}
