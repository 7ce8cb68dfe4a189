package pgsql

import (
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:    customerRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		TxManager:       &BaseRepository{Pool: dbPool},
	}
}
