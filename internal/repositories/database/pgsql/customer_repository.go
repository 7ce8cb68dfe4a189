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

const customerColumns = `customer_id, name, address, city, state, country, account_ids, created_at, updated_at`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// ListCustomers retrieves every customer ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC, customer_id ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return mapping.ToDomainCustomerSlice(customers), nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer %s: %w", customerID, err)
	}
	modelCustomer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to scan customer %s: %w", customerID, err)
	}
	customer := mapping.ToDomainCustomer(modelCustomer)
	return &customer, nil
}

// CustomerExists reports whether a customer row exists.
func (r *PgxCustomerRepository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1);`, customerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer %s: %w", customerID, err)
	}
	return exists, nil
}
