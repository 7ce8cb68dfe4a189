package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock pgx.Tx ---
// Only Exec and QueryRow are used by the unit of work's write paths; the
// embedded interface panics if anything else is reached.
type MockTx struct {
	pgx.Tx
	mock.Mock
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgx.Row)
}

type existsRow struct {
	exists bool
	err    error
}

func (r existsRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.exists
	return nil
}

func sqlContaining(fragment string) any {
	return mock.MatchedBy(func(sql string) bool { return strings.Contains(sql, fragment) })
}

type UnitOfWorkTestSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	accountID string
	tx        *MockTx
	uow       *pgxUnitOfWork
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.accountID = "11111111-1111-1111-1111-111111111111"
	suite.tx = new(MockTx)
	suite.uow = &pgxUnitOfWork{tx: suite.tx}
}

func (suite *UnitOfWorkTestSuite) TearDownTest() {
	suite.tx.AssertExpectations(suite.T())
}

// --- DebitAccount ---

func (suite *UnitOfWorkTestSuite) TestDebitAccount_Success() {
	amount := decimal.NewFromInt(40)
	suite.tx.On("Exec", suite.ctx, sqlContaining("balance >= $2"), []any{suite.accountID, amount, suite.now}).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil).Once()

	err := suite.uow.DebitAccount(suite.ctx, suite.accountID, amount, suite.now)

	suite.NoError(err)
	suite.tx.AssertNotCalled(suite.T(), "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkTestSuite) TestDebitAccount_NoRowUpdated() {
	tests := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{name: "balance too low", exists: true, wantErr: apperrors.ErrInsufficientFunds},
		{name: "account missing", exists: false, wantErr: apperrors.ErrAccountNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.tx.On("Exec", suite.ctx, sqlContaining("UPDATE accounts"), mock.Anything).
				Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()
			suite.tx.On("QueryRow", suite.ctx, sqlContaining("SELECT EXISTS"), []any{suite.accountID}).
				Return(existsRow{exists: tt.exists}).Once()

			err := suite.uow.DebitAccount(suite.ctx, suite.accountID, decimal.NewFromInt(1), suite.now)

			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *UnitOfWorkTestSuite) TestDebitAccount_CheckViolation() {
	suite.tx.On("Exec", suite.ctx, mock.Anything, mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: pgCheckViolation}).Once()

	err := suite.uow.DebitAccount(suite.ctx, suite.accountID, decimal.NewFromInt(1), suite.now)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *UnitOfWorkTestSuite) TestDebitAccount_StoreFault() {
	connErr := errors.New("connection reset")
	suite.tx.On("Exec", suite.ctx, mock.Anything, mock.Anything).Return(pgconn.CommandTag{}, connErr).Once()

	err := suite.uow.DebitAccount(suite.ctx, suite.accountID, decimal.NewFromInt(1), suite.now)

	suite.ErrorIs(err, connErr)
	suite.NotErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *UnitOfWorkTestSuite) TestDebitAccount_ExistenceCheckFails() {
	suite.tx.On("Exec", suite.ctx, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()
	suite.tx.On("QueryRow", suite.ctx, mock.Anything, mock.Anything).Return(existsRow{err: pgx.ErrTxClosed}).Once()

	err := suite.uow.DebitAccount(suite.ctx, suite.accountID, decimal.NewFromInt(1), suite.now)

	suite.ErrorIs(err, pgx.ErrTxClosed)
}

// --- CreditAccount ---

func (suite *UnitOfWorkTestSuite) TestCreditAccount() {
	tests := []struct {
		name    string
		tag     pgconn.CommandTag
		execErr error
		wantErr error
	}{
		{name: "updated", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "missing account", tag: pgconn.NewCommandTag("UPDATE 0"), wantErr: apperrors.ErrAccountNotFound},
		{name: "numeric overflow", execErr: &pgconn.PgError{Code: pgNumericOutOfRange}, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.tx.On("Exec", suite.ctx, sqlContaining("balance = balance + $2"), mock.Anything).Return(tt.tag, tt.execErr).Once()

			err := suite.uow.CreditAccount(suite.ctx, suite.accountID, decimal.NewFromInt(1), suite.now)

			if tt.wantErr == nil {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, tt.wantErr)
			}
		})
	}
}

// --- Appends ---

func (suite *UnitOfWorkTestSuite) TestAppendAccountTransaction_MissingAccount() {
	suite.tx.On("Exec", suite.ctx, sqlContaining("array_append(transaction_ids, $2)"), []any{suite.accountID, "txn", suite.now}).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()

	err := suite.uow.AppendAccountTransaction(suite.ctx, suite.accountID, "txn", suite.now)

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *UnitOfWorkTestSuite) TestAppendCustomerAccount() {
	customerID := "22222222-2222-2222-2222-222222222222"
	suite.tx.On("Exec", suite.ctx, sqlContaining("array_append(account_ids, $2)"), []any{customerID, suite.accountID, suite.now}).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil).Once()
	suite.tx.On("Exec", suite.ctx, sqlContaining("array_append(account_ids, $2)"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()

	suite.NoError(suite.uow.AppendCustomerAccount(suite.ctx, customerID, suite.accountID, suite.now))
	suite.ErrorIs(suite.uow.AppendCustomerAccount(suite.ctx, customerID, suite.accountID, suite.now), apperrors.ErrCustomerNotFound)
}

// --- Inserts ---

func (suite *UnitOfWorkTestSuite) TestInsertAccount_ConstraintMapping() {
	tests := []struct {
		code    string
		wantErr error
	}{
		{code: pgUniqueViolation, wantErr: apperrors.ErrDuplicate},
		{code: pgForeignKeyViolation, wantErr: apperrors.ErrCustomerNotFound},
		{code: pgCheckViolation, wantErr: apperrors.ErrValidation},
		{code: pgNumericOutOfRange, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.code, func() {
			suite.tx.On("Exec", suite.ctx, sqlContaining("INSERT INTO accounts"), mock.Anything).
				Return(pgconn.CommandTag{}, &pgconn.PgError{Code: tt.code}).Once()

			err := suite.uow.InsertAccount(suite.ctx, domain.Account{AccountID: suite.accountID, CustomerID: "c"})

			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *UnitOfWorkTestSuite) TestInsertTransaction() {
	deposit := domain.NewDepositTransaction("txn", suite.accountID, decimal.NewFromInt(5), suite.now)

	suite.Run("invalid entry never reaches the database", func() {
		bad := deposit
		bad.Amount = decimal.RequireFromString("0.00001")
		suite.ErrorIs(suite.uow.InsertTransaction(suite.ctx, bad), apperrors.ErrValidation)
	})

	suite.Run("missing account", func() {
		suite.tx.On("Exec", suite.ctx, sqlContaining("INSERT INTO transactions"), mock.Anything).
			Return(pgconn.CommandTag{}, &pgconn.PgError{Code: pgForeignKeyViolation}).Once()
		suite.ErrorIs(suite.uow.InsertTransaction(suite.ctx, deposit), apperrors.ErrAccountNotFound)
	})

	suite.Run("duplicate", func() {
		suite.tx.On("Exec", suite.ctx, sqlContaining("INSERT INTO transactions"), mock.Anything).
			Return(pgconn.CommandTag{}, &pgconn.PgError{Code: pgUniqueViolation}).Once()
		suite.ErrorIs(suite.uow.InsertTransaction(suite.ctx, deposit), apperrors.ErrDuplicate)
	})
}

func TestUnitOfWork(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
