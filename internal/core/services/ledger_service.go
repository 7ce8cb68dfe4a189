package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/SscSPs/mini_ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	opCreateAccount = "create_account"
	opTransfer      = "transfer"
)

// ledgerService implements the account-mutation core: opening accounts and
// moving funds, each as a single atomic unit of work against the store.
type ledgerService struct {
	BaseService
	customerRepo    portsrepo.CustomerReader
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	txManager       portsrepo.TransactionManager

	now   func() time.Time
	newID func() string
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithIDGenerator overrides how new account and transaction IDs are minted.
func WithIDGenerator(newID func() string) LedgerOption {
	return func(s *ledgerService) {
		s.newID = newID
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		customerRepo:    repos.CustomerRepo,
		accountRepo:     repos.AccountRepo,
		transactionRepo: repos.TransactionRepo,
		txManager:       repos.TxManager,
		now:             time.Now,
		newID:           uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateAccount opens an account for an existing customer. The account, the
// customer back-reference, the initial deposit entry and its link are written
// in one unit of work.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := req.Validate(); err != nil {
		s.LogWarn(ctx, "Rejected invalid create account request", slog.String("error", err.Error()))
		middleware.RecordLedgerOperation(opCreateAccount, "invalid")
		return nil, err
	}

	customerID := req.CustomerID
	exists, err := s.customerRepo.CustomerExists(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check customer existence", slog.String("customer_id", customerID))
		middleware.RecordLedgerOperation(opCreateAccount, "error")
		return nil, fmt.Errorf("failed to check customer %s: %w", customerID, err)
	}
	if !exists {
		s.LogWarn(ctx, "Customer does not exist", slog.String("customer_id", customerID))
		middleware.RecordLedgerOperation(opCreateAccount, "not_found")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, customerID)
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:      s.newID(),
		CustomerID:     customerID,
		Balance:        req.Deposit.Decimal,
		TransactionIDs: []string{},
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	deposit := domain.NewDepositTransaction(s.newID(), account.AccountID, req.Deposit.Decimal, now)
	if err := deposit.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.InsertAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}
		if err := uow.AppendCustomerAccount(ctx, customerID, account.AccountID, now); err != nil {
			return fmt.Errorf("failed to link account to customer: %w", err)
		}
		if err := uow.InsertTransaction(ctx, deposit); err != nil {
			return fmt.Errorf("failed to insert deposit transaction: %w", err)
		}
		if err := uow.AppendAccountTransaction(ctx, account.AccountID, deposit.TransactionID, now); err != nil {
			return fmt.Errorf("failed to link deposit to account: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrCustomerNotFound) {
			s.LogWarn(ctx, "Customer disappeared while opening account", slog.String("customer_id", customerID))
			middleware.RecordLedgerOperation(opCreateAccount, "not_found")
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create account", slog.String("customer_id", customerID))
		middleware.RecordLedgerOperation(opCreateAccount, "error")
		return nil, err
	}

	account.TransactionIDs = []string{deposit.TransactionID}
	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("customer_id", customerID),
		slog.String("deposit", account.Balance.String()))
	middleware.RecordLedgerOperation(opCreateAccount, "ok")
	return &account, nil
}

// TransferFunds moves amount from origin to destination and returns the
// debit-side entry. The sufficiency check is repeated under row locks and the
// debit itself is conditional, so concurrent transfers cannot overdraw.
func (s *ledgerService) TransferFunds(ctx context.Context, req dto.TransferFundsRequest) (*domain.Transaction, error) {
	if err := req.Validate(); err != nil {
		s.LogWarn(ctx, "Rejected invalid transfer request", slog.String("error", err.Error()))
		middleware.RecordLedgerOperation(opTransfer, "invalid")
		return nil, err
	}

	originID, destinationID := req.OriginID, req.DestinationID
	amount := req.Amount.Decimal
	logAttrs := []any{
		slog.String("origin_id", originID),
		slog.String("destination_id", destinationID),
		slog.String("amount", amount.String()),
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{originID, destinationID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transfer accounts", logAttrs...)
		middleware.RecordLedgerOperation(opTransfer, "error")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	origin, originFound := accounts[originID]
	destination, destinationFound := accounts[destinationID]
	if !originFound || !destinationFound {
		s.LogWarn(ctx, "Transfer references missing account", logAttrs...)
		middleware.RecordLedgerOperation(opTransfer, "not_found")
		return nil, fmt.Errorf("%w: origin found=%t, destination found=%t", apperrors.ErrAccountNotFound, originFound, destinationFound)
	}
	if !origin.CanCover(amount) {
		s.LogWarn(ctx, "Origin account cannot cover transfer", append(logAttrs, slog.String("balance", origin.Balance.String()))...)
		middleware.RecordLedgerOperation(opTransfer, "insufficient_funds")
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, origin.Balance, amount)
	}
	if !destination.CanHold(amount) {
		s.LogWarn(ctx, "Destination account cannot hold transfer", logAttrs...)
		middleware.RecordLedgerOperation(opTransfer, "invalid")
		return nil, fmt.Errorf("%w: destination balance would reach %s", apperrors.ErrValidation, domain.MaxAmount)
	}

	now := s.now().UTC()
	debit, credit := domain.NewTransferEntries(s.newID(), s.newID(), originID, destinationID, amount, now)

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		lockIDs := []string{originID, destinationID}
		sort.Strings(lockIDs) // fixed lock order avoids deadlocks between opposite transfers
		locked, err := uow.LockAccounts(ctx, lockIDs)
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if current := locked[originID]; !current.CanCover(amount) {
			return fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, current.Balance, amount)
		}

		// Origin side
		if err := uow.DebitAccount(ctx, originID, amount, now); err != nil {
			return fmt.Errorf("failed to debit origin account: %w", err)
		}
		if err := uow.InsertTransaction(ctx, debit); err != nil {
			return fmt.Errorf("failed to insert debit transaction: %w", err)
		}
		if err := uow.AppendAccountTransaction(ctx, originID, debit.TransactionID, now); err != nil {
			return fmt.Errorf("failed to link debit to origin account: %w", err)
		}

		// Destination side
		if err := uow.CreditAccount(ctx, destinationID, amount, now); err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}
		if err := uow.InsertTransaction(ctx, credit); err != nil {
			return fmt.Errorf("failed to insert credit transaction: %w", err)
		}
		if err := uow.AppendAccountTransaction(ctx, destinationID, credit.TransactionID, now); err != nil {
			return fmt.Errorf("failed to link credit to destination account: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			s.LogWarn(ctx, "Transfer lost a race for origin funds", logAttrs...)
			middleware.RecordLedgerOperation(opTransfer, "insufficient_funds")
		case errors.Is(err, apperrors.ErrAccountNotFound):
			s.LogWarn(ctx, "Transfer account disappeared before commit", logAttrs...)
			middleware.RecordLedgerOperation(opTransfer, "not_found")
		case errors.Is(err, apperrors.ErrValidation):
			s.LogWarn(ctx, "Transfer rejected by the store", append(logAttrs, slog.String("error", err.Error()))...)
			middleware.RecordLedgerOperation(opTransfer, "invalid")
		default:
			s.LogError(ctx, err, "Failed to transfer funds", logAttrs...)
			middleware.RecordLedgerOperation(opTransfer, "error")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Funds transferred", append(logAttrs, slog.String("transaction_id", debit.TransactionID))...)
	middleware.RecordLedgerOperation(opTransfer, "ok")
	return &debit, nil
}

// GetBalance returns the current balance of an account.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if err := validateID("account", accountID); err != nil {
		return decimal.Zero, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance", slog.String("account_id", accountID))
		}
		return decimal.Zero, err
	}

	s.LogDebug(ctx, "Balance retrieved", slog.String("account_id", accountID))
	return account.Balance, nil
}

// GetAccountTransactions returns the account's log entries in insertion order.
func (s *ledgerService) GetAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if err := validateID("account", accountID); err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListTransactionsByAccountID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}

	s.LogDebug(ctx, "Account transactions retrieved", slog.String("account_id", accountID), slog.Int("count", len(txns)))
	return txns, nil
}
