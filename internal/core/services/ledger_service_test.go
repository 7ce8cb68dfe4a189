package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
	"github.com/SscSPs/mini_ledger/internal/core/services"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	now             time.Time
	ids             []string
	customerRepo    *MockCustomerRepository
	accountRepo     *MockAccountRepository
	transactionRepo *MockTransactionRepository
	uow             *MockUnitOfWork
	txManager       *MockTxManager
	svc             portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.ids = nil
	suite.customerRepo = new(MockCustomerRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.transactionRepo = new(MockTransactionRepository)
	suite.uow = new(MockUnitOfWork)
	suite.txManager = &MockTxManager{UoW: suite.uow}

	next := 0
	suite.svc = services.NewLedgerService(portsrepo.RepositoryProvider{
		CustomerRepo:    suite.customerRepo,
		AccountRepo:     suite.accountRepo,
		TransactionRepo: suite.transactionRepo,
		TxManager:       suite.txManager,
	},
		services.WithClock(func() time.Time { return suite.now }),
		services.WithIDGenerator(func() string {
			next++
			id := fmt.Sprintf("00000000-0000-0000-0000-%012d", next)
			suite.ids = append(suite.ids, id)
			return id
		}),
	)
}

func (suite *LedgerServiceTestSuite) TearDownTest() {
	suite.customerRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
	suite.transactionRepo.AssertExpectations(suite.T())
	suite.uow.AssertExpectations(suite.T())
}

// --- CreateAccount ---

func (suite *LedgerServiceTestSuite) TestCreateAccount_Success() {
	customerID := uuid.NewString()
	deposit := decimal.RequireFromString("500.50")
	accountID := "00000000-0000-0000-0000-000000000001"
	depositID := "00000000-0000-0000-0000-000000000002"

	suite.customerRepo.On("CustomerExists", suite.ctx, customerID).Return(true, nil).Once()
	suite.uow.On("InsertAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == accountID && a.CustomerID == customerID && a.Balance.Equal(deposit)
	})).Return(nil).Once()
	suite.uow.On("AppendCustomerAccount", suite.ctx, customerID, accountID, suite.now).Return(nil).Once()
	suite.uow.On("InsertTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == depositID && t.OriginID == accountID && t.DestinationID == nil &&
			t.Reason == domain.ReasonInitialDeposit && t.Amount.Equal(deposit)
	})).Return(nil).Once()
	suite.uow.On("AppendAccountTransaction", suite.ctx, accountID, depositID, suite.now).Return(nil).Once()

	account, err := suite.svc.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		CustomerID: customerID,
		Deposit:    dto.NewMoney(deposit),
	})

	suite.Require().NoError(err)
	suite.Equal(accountID, account.AccountID)
	suite.Equal([]string{depositID}, account.TransactionIDs)
	suite.True(deposit.Equal(account.Balance))
	suite.Equal(suite.now, account.CreatedAt)
	suite.True(suite.txManager.Committed)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_InvalidCustomerID() {
	_, err := suite.svc.CreateAccount(suite.ctx, dto.CreateAccountRequest{CustomerID: "not-a-uuid"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.customerRepo.AssertNotCalled(suite.T(), "CustomerExists", mock.Anything, mock.Anything)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_NegativeDeposit() {
	_, err := suite.svc.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		CustomerID: uuid.NewString(),
		Deposit:    dto.NewMoney(decimal.NewFromInt(-1)),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_CustomerMissing() {
	customerID := uuid.NewString()
	suite.customerRepo.On("CustomerExists", suite.ctx, customerID).Return(false, nil).Once()

	_, err := suite.svc.CreateAccount(suite.ctx, dto.CreateAccountRequest{CustomerID: customerID})

	suite.ErrorIs(err, apperrors.ErrCustomerNotFound)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_StoreFailureRollsBack() {
	customerID := uuid.NewString()
	storeErr := errors.New("connection reset")
	suite.customerRepo.On("CustomerExists", suite.ctx, customerID).Return(true, nil).Once()
	suite.uow.On("InsertAccount", suite.ctx, mock.Anything).Return(nil).Once()
	suite.uow.On("AppendCustomerAccount", suite.ctx, customerID, mock.Anything, suite.now).Return(storeErr).Once()

	_, err := suite.svc.CreateAccount(suite.ctx, dto.CreateAccountRequest{CustomerID: customerID})

	suite.ErrorIs(err, storeErr)
	suite.False(suite.txManager.Committed)
	suite.uow.AssertNotCalled(suite.T(), "InsertTransaction", mock.Anything, mock.Anything)
}

// --- TransferFunds ---

func (suite *LedgerServiceTestSuite) transferAccounts(originBalance int64) (string, string, map[string]domain.Account) {
	origin, destination := uuid.NewString(), uuid.NewString()
	return origin, destination, map[string]domain.Account{
		origin:      {AccountID: origin, Balance: decimal.NewFromInt(originBalance)},
		destination: {AccountID: destination, Balance: decimal.Zero},
	}
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_Success() {
	origin, destination, accounts := suite.transferAccounts(500)
	amount := decimal.NewFromInt(100)
	debitID := "00000000-0000-0000-0000-000000000001"
	creditID := "00000000-0000-0000-0000-000000000002"

	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()
	suite.uow.On("LockAccounts", suite.ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2 && ids[0] < ids[1]
	})).Return(accounts, nil).Once()
	suite.uow.On("DebitAccount", suite.ctx, origin, amount, suite.now).Return(nil).Once()
	suite.uow.On("InsertTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == debitID && t.Reason == domain.ReasonTransferDebit
	})).Return(nil).Once()
	suite.uow.On("AppendAccountTransaction", suite.ctx, origin, debitID, suite.now).Return(nil).Once()
	suite.uow.On("CreditAccount", suite.ctx, destination, amount, suite.now).Return(nil).Once()
	suite.uow.On("InsertTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == creditID && t.Reason == domain.ReasonTransferCredit
	})).Return(nil).Once()
	suite.uow.On("AppendAccountTransaction", suite.ctx, destination, creditID, suite.now).Return(nil).Once()

	txn, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(amount),
	})

	suite.Require().NoError(err)
	suite.Equal(debitID, txn.TransactionID)
	suite.Equal(origin, txn.OriginID)
	suite.Require().NotNil(txn.DestinationID)
	suite.Equal(destination, *txn.DestinationID)
	suite.Equal(domain.ReasonTransferDebit, txn.Reason)
	suite.True(suite.txManager.Committed)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_SameAccount() {
	id := uuid.NewString()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{OriginID: id, DestinationID: id})

	suite.ErrorIs(err, apperrors.ErrSameAccount)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_MissingAccount() {
	origin, destination, accounts := suite.transferAccounts(500)
	delete(accounts, destination)
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(decimal.NewFromInt(1)),
	})

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_InsufficientFunds() {
	origin, destination, accounts := suite.transferAccounts(500)
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(decimal.NewFromInt(600)),
	})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_DestinationAtCapacity() {
	origin, destination, accounts := suite.transferAccounts(500)
	full := accounts[destination]
	full.Balance = domain.MaxAmount.Sub(decimal.NewFromInt(100))
	accounts[destination] = full
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(decimal.NewFromInt(100)),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_UnstorablePrecision() {
	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      uuid.NewString(),
		DestinationID: uuid.NewString(),
		Amount:        dto.NewMoney(decimal.RequireFromString("0.00005")),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.Zero(suite.txManager.Calls)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_BalanceDrainedBeforeLock() {
	origin, destination, accounts := suite.transferAccounts(500)
	drained := map[string]domain.Account{
		origin:      {AccountID: origin, Balance: decimal.NewFromInt(50)},
		destination: accounts[destination],
	}
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()
	suite.uow.On("LockAccounts", suite.ctx, mock.Anything).Return(drained, nil).Once()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(decimal.NewFromInt(100)),
	})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.False(suite.txManager.Committed)
	suite.uow.AssertNotCalled(suite.T(), "DebitAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransferFunds_CreditFailureRollsBack() {
	origin, destination, accounts := suite.transferAccounts(500)
	storeErr := errors.New("disk full")
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{origin, destination}).Return(accounts, nil).Once()
	suite.uow.On("LockAccounts", suite.ctx, mock.Anything).Return(accounts, nil).Once()
	suite.uow.On("DebitAccount", suite.ctx, origin, mock.Anything, suite.now).Return(nil).Once()
	suite.uow.On("InsertTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.uow.On("AppendAccountTransaction", suite.ctx, origin, mock.Anything, suite.now).Return(nil).Once()
	suite.uow.On("CreditAccount", suite.ctx, destination, mock.Anything, suite.now).Return(storeErr).Once()

	_, err := suite.svc.TransferFunds(suite.ctx, dto.TransferFundsRequest{
		OriginID:      origin,
		DestinationID: destination,
		Amount:        dto.NewMoney(decimal.NewFromInt(10)),
	})

	suite.ErrorIs(err, storeErr)
	suite.False(suite.txManager.Committed)
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetBalance() {
	accountID := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).
		Return(&domain.Account{AccountID: accountID, Balance: decimal.NewFromInt(42)}, nil).Once()

	balance, err := suite.svc.GetBalance(suite.ctx, accountID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(42).Equal(balance))
}

func (suite *LedgerServiceTestSuite) TestGetBalance_InvalidID() {
	_, err := suite.svc.GetBalance(suite.ctx, "42")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetBalance_NotFound() {
	accountID := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.svc.GetBalance(suite.ctx, accountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetAccountTransactions_EmptyIsNotNil() {
	accountID := uuid.NewString()
	suite.transactionRepo.On("ListTransactionsByAccountID", suite.ctx, accountID).Return(nil, nil).Once()

	txns, err := suite.svc.GetAccountTransactions(suite.ctx, accountID)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
