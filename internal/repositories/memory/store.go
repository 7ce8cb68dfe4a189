// Package memory provides an in-process implementation of the repository
// ports. It backs local development and the service-level tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps customers, accounts and transactions in maps guarded by a single
// RWMutex. Units of work hold the write lock for their whole duration and stage
// changes until they commit.
type Store struct {
	mu           sync.RWMutex
	customers    map[string]domain.Customer
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithCustomers seeds the store with pre-provisioned customers.
func WithCustomers(customers ...domain.Customer) Option {
	return func(s *Store) {
		for _, c := range customers {
			c.AccountIDs = cloneIDs(c.AccountIDs)
			s.customers[c.CustomerID] = c
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		customers:    make(map[string]domain.Customer),
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RepositoryProvider exposes the store through the repository ports.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:    s,
		AccountRepo:     s,
		TransactionRepo: s,
		TxManager:       s,
	}
}

var (
	_ portsrepo.CustomerRepositoryFacade    = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionManager          = (*Store)(nil)
)

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}

func cloneCustomer(c domain.Customer) domain.Customer {
	c.AccountIDs = cloneIDs(c.AccountIDs)
	return c
}

func cloneAccount(a domain.Account) domain.Account {
	a.TransactionIDs = cloneIDs(a.TransactionIDs)
	return a
}

func cloneTransaction(t domain.Transaction) domain.Transaction {
	if t.DestinationID != nil {
		dest := *t.DestinationID
		t.DestinationID = &dest
	}
	return t
}

// --- Readers ---

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out, nil
}

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, customerID)
	}
	c = cloneCustomer(c)
	return &c, nil
}

func (s *Store) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.customers[customerID]
	return ok, nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	a = cloneAccount(a)
	return &a, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = cloneAccount(a)
		}
	}
	return out, nil
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
	}
	t = cloneTransaction(t)
	return &t, nil
}

func (s *Store) ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	out := make([]domain.Transaction, 0, len(a.TransactionIDs))
	for _, id := range a.TransactionIDs {
		if t, ok := s.transactions[id]; ok {
			out = append(out, cloneTransaction(t))
		}
	}
	return out, nil
}

// --- Unit of work ---

// WithinTx runs fn against a staging overlay while holding the write lock.
// The overlay is applied only when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uow := &unitOfWork{
		store:        s,
		customers:    make(map[string]domain.Customer),
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
	}
	if err := fn(ctx, uow); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, c := range uow.customers {
		s.customers[id] = c
	}
	for id, a := range uow.accounts {
		s.accounts[id] = a
	}
	for id, t := range uow.transactions {
		s.transactions[id] = t
	}
	return nil
}

// unitOfWork stages copies of every record it touches. It must only be used
// while the owning Store's write lock is held.
type unitOfWork struct {
	store        *Store
	customers    map[string]domain.Customer
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) customer(id string) (domain.Customer, bool) {
	if c, ok := u.customers[id]; ok {
		return c, true
	}
	c, ok := u.store.customers[id]
	if !ok {
		return domain.Customer{}, false
	}
	return cloneCustomer(c), true
}

func (u *unitOfWork) account(id string) (domain.Account, bool) {
	if a, ok := u.accounts[id]; ok {
		return a, true
	}
	a, ok := u.store.accounts[id]
	if !ok {
		return domain.Account{}, false
	}
	return cloneAccount(a), true
}

func (u *unitOfWork) transactionExists(id string) bool {
	if _, ok := u.transactions[id]; ok {
		return true
	}
	_, ok := u.store.transactions[id]
	return ok
}

func (u *unitOfWork) InsertAccount(ctx context.Context, account domain.Account) error {
	if _, exists := u.account(account.AccountID); exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, ok := u.customer(account.CustomerID); !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, account.CustomerID)
	}
	if err := domain.ValidateAmount(account.Balance); err != nil {
		return fmt.Errorf("%w: account balance: %s", apperrors.ErrValidation, err.Error())
	}
	account = cloneAccount(account)
	account.TransactionIDs = []string{}
	u.accounts[account.AccountID] = account
	return nil
}

func (u *unitOfWork) AppendCustomerAccount(ctx context.Context, customerID, accountID string, now time.Time) error {
	c, ok := u.customer(customerID)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrCustomerNotFound, customerID)
	}
	c.AccountIDs = append(c.AccountIDs, accountID)
	c.UpdatedAt = now
	u.customers[customerID] = c
	return nil
}

func (u *unitOfWork) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if u.transactionExists(txn.TransactionID) {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if _, ok := u.account(txn.OriginID); !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, txn.OriginID)
	}
	if txn.DestinationID != nil {
		if _, ok := u.account(*txn.DestinationID); !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, *txn.DestinationID)
		}
	}
	u.transactions[txn.TransactionID] = cloneTransaction(txn)
	return nil
}

func (u *unitOfWork) AppendAccountTransaction(ctx context.Context, accountID, transactionID string, now time.Time) error {
	a, ok := u.account(accountID)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	a.TransactionIDs = append(a.TransactionIDs, transactionID)
	a.UpdatedAt = now
	u.accounts[accountID] = a
	return nil
}

// LockAccounts returns the current state of the accounts. The store-wide write
// lock already serialises units of work, so no per-row locking is needed.
func (u *unitOfWork) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		a, ok := u.account(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
		out[id] = a
	}
	return out, nil
}

func (u *unitOfWork) DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	a, ok := u.account(accountID)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	if !a.CanCover(amount) {
		return fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, a.Balance, amount)
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = now
	u.accounts[accountID] = a
	return nil
}

func (u *unitOfWork) CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, now time.Time) error {
	a, ok := u.account(accountID)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	if !a.CanHold(amount) {
		return fmt.Errorf("%w: balance of account %s would reach %s", apperrors.ErrValidation, accountID, domain.MaxAmount)
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = now
	u.accounts[accountID] = a
	return nil
}
