package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/mini_ledger/internal/models"
	"github.com/SscSPs/mini_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// pgxUnitOfWork issues every mutation on one open pgx.Tx.
type pgxUnitOfWork struct {
	tx pgx.Tx
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) InsertAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, customer_id, balance, transaction_ids, created_at, updated_at)
		VALUES ($1, $2, $3, '{}', $4, $5);
	`
	_, err := u.tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.CustomerID,
		modelAcc.Balance,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, modelAcc.CustomerID)
		case pgCheckViolation, pgNumericOutOfRange:
			return fmt.Errorf("%w: account balance %s is out of range", apperrors.ErrValidation, modelAcc.Balance)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

func (u *pgxUnitOfWork) AppendCustomerAccount(ctx context.Context, customerID, accountID string, now time.Time) error {
	query := `
		UPDATE customers
		SET account_ids = array_append(account_ids, $2), updated_at = $3
		WHERE customer_id = $1;
	`
	cmdTag, err := u.tx.Exec(ctx, query, customerID, accountID, now)
	if err != nil {
		return fmt.Errorf("failed to append account %s to customer %s: %w", accountID, customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, customerID)
	}
	return nil
}

func (u *pgxUnitOfWork) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, origin_id, destination_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := u.tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.OriginID,
		modelTxn.DestinationID,
		modelTxn.Amount,
		modelTxn.Reason,
		modelTxn.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: transaction %s references a missing account", apperrors.ErrAccountNotFound, modelTxn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

func (u *pgxUnitOfWork) AppendAccountTransaction(ctx context.Context, accountID, transactionID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET transaction_ids = array_append(transaction_ids, $2), updated_at = $3
		WHERE account_id = $1;
	`
	cmdTag, err := u.tx.Exec(ctx, query, accountID, transactionID, now)
	if err != nil {
		return fmt.Errorf("failed to append transaction %s to account %s: %w", transactionID, accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return nil
}

// LockAccounts takes row locks in account_id order so that two transfers over
// the same pair of accounts always lock them in the same sequence.
func (u *pgxUnitOfWork) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := u.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked accounts: %w", err)
	}

	result := make(map[string]domain.Account, len(modelAccs))
	for _, m := range modelAccs {
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	for _, id := range accountIDs {
		if _, ok := result[id]; !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
	}
	return result, nil
}

// DebitAccount only subtracts when the current balance covers amount.
func (u *pgxUnitOfWork) DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = $3
		WHERE account_id = $1 AND balance >= $2;
	`
	cmdTag, err := u.tx.Exec(ctx, query, accountID, amount, now)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
		}
		return fmt.Errorf("failed to debit account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	exists, err := accountExists(ctx, u.tx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
}

func (u *pgxUnitOfWork) CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = $3
		WHERE account_id = $1;
	`
	cmdTag, err := u.tx.Exec(ctx, query, accountID, amount, now)
	if err != nil {
		if pgErrorCode(err) == pgNumericOutOfRange {
			return fmt.Errorf("%w: balance of account %s would reach %s", apperrors.ErrValidation, accountID, domain.MaxAmount)
		}
		return fmt.Errorf("failed to credit account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return nil
}
