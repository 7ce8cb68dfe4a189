package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UnitOfWork exposes the store mutations that may only run inside an atomic
// transaction. Every call made through one UnitOfWork commits together or not at all.
type UnitOfWork interface {
	// InsertAccount persists a new account with an empty transaction list.
	InsertAccount(ctx context.Context, account domain.Account) error

	// AppendCustomerAccount appends an account ID to a customer's account list.
	// Returns apperrors.ErrCustomerNotFound if the customer does not exist.
	AppendCustomerAccount(ctx context.Context, customerID, accountID string, now time.Time) error

	// InsertTransaction persists a new immutable log entry.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// AppendAccountTransaction appends a transaction ID to an account's transaction list.
	// Returns apperrors.ErrAccountNotFound if the account does not exist.
	AppendAccountTransaction(ctx context.Context, accountID, transactionID string, now time.Time) error

	// LockAccounts selects the given accounts and holds them for update until the unit of work ends.
	// Returns apperrors.ErrAccountNotFound if any of them is missing.
	LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// DebitAccount subtracts amount from the balance only if the balance covers it.
	// Returns apperrors.ErrInsufficientFunds otherwise.
	DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error

	// CreditAccount adds amount to the balance.
	CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error
}

// TransactionManager runs a function as one atomic unit of work.
type TransactionManager interface {
	// WithinTx commits when fn returns nil and rolls back on any error, returning fn's error unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
