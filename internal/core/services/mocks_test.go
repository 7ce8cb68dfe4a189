package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock UnitOfWork ---
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) InsertAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockUnitOfWork) AppendCustomerAccount(ctx context.Context, customerID, accountID string, now time.Time) error {
	return m.Called(ctx, customerID, accountID, now).Error(0)
}
func (m *MockUnitOfWork) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}
func (m *MockUnitOfWork) AppendAccountTransaction(ctx context.Context, accountID, transactionID string, now time.Time) error {
	return m.Called(ctx, accountID, transactionID, now).Error(0)
}
func (m *MockUnitOfWork) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockUnitOfWork) DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	return m.Called(ctx, accountID, amount, now).Error(0)
}
func (m *MockUnitOfWork) CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	return m.Called(ctx, accountID, amount, now).Error(0)
}

var _ portsrepo.UnitOfWork = (*MockUnitOfWork)(nil)

// MockTxManager runs the callback against its UnitOfWork and records whether it would have committed.
type MockTxManager struct {
	UoW       *MockUnitOfWork
	Calls     int
	Committed bool
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	m.Calls++
	if err := fn(ctx, m.UoW); err != nil {
		return err
	}
	m.Committed = true
	return nil
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)
