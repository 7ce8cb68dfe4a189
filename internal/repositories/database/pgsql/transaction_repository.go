package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/mini_ledger/internal/models"
	"github.com/SscSPs/mini_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, origin_id, destination_id, amount, reason, created_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction log.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// FindTransactionByID retrieves a single log entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	modelTxn, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to scan transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(modelTxn)
	return &txn, nil
}

// ListTransactionsByAccountID expands the account's transaction_ids array in
// array order.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	exists, err := accountExists(ctx, r.Pool, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}

	query := `
		SELECT t.transaction_id, t.origin_id, t.destination_id, t.amount, t.reason, t.created_at
		FROM accounts a
		CROSS JOIN LATERAL unnest(a.transaction_ids) WITH ORDINALITY AS l(transaction_id, ord)
		JOIN transactions t ON t.transaction_id = l.transaction_id
		WHERE a.account_id = $1
		ORDER BY l.ord ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for account %s: %w", accountID, err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
