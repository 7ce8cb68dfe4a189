package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reason classifies why a transaction was written to the log.
type Reason string

const (
	ReasonInitialDeposit Reason = "Initial deposit"
	ReasonTransferDebit  Reason = "Funds deducted due to transfer"
	ReasonTransferCredit Reason = "Funds received via transfer"
)

// Transaction is an immutable log entry describing a balance-affecting event.
// A nil DestinationID marks a deposit rather than a transfer.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	OriginID      string          `json:"originID"`      // FK -> accounts.account_id
	DestinationID *string         `json:"destinationID"` // Nullable FK -> accounts.account_id
	Amount        decimal.Decimal `json:"amount"`
	Reason        Reason          `json:"reason"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsTransfer reports whether the entry records a movement between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.DestinationID != nil
}

// Validate checks the structural invariants of a log entry before it is persisted.
func (t Transaction) Validate() error {
	if t.TransactionID == "" {
		return errors.New("transaction ID is required")
	}
	if t.OriginID == "" {
		return errors.New("origin account ID is required")
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return fmt.Errorf("transaction %w", err)
	}
	switch t.Reason {
	case ReasonInitialDeposit:
		if t.IsTransfer() {
			return errors.New("a deposit must not have a destination account")
		}
	case ReasonTransferDebit, ReasonTransferCredit:
		if !t.IsTransfer() {
			return errors.New("a transfer entry requires a destination account")
		}
	default:
		return errors.New("unknown transaction reason: " + string(t.Reason))
	}
	return nil
}

// NewDepositTransaction builds the entry recorded when an account is opened.
func NewDepositTransaction(id, accountID string, amount decimal.Decimal, now time.Time) Transaction {
	return Transaction{
		TransactionID: id,
		OriginID:      accountID,
		Amount:        amount,
		Reason:        ReasonInitialDeposit,
		CreatedAt:     now,
	}
}

// NewTransferEntries builds the debit and credit entries of a transfer.
// Both share origin, destination and amount and differ only in reason.
func NewTransferEntries(debitID, creditID, originID, destinationID string, amount decimal.Decimal, now time.Time) (debit Transaction, credit Transaction) {
	dest := destinationID
	debit = Transaction{
		TransactionID: debitID,
		OriginID:      originID,
		DestinationID: &dest,
		Amount:        amount,
		Reason:        ReasonTransferDebit,
		CreatedAt:     now,
	}
	creditDest := destinationID
	credit = debit
	credit.TransactionID = creditID
	credit.DestinationID = &creditDest
	credit.Reason = ReasonTransferCredit
	return debit, credit
}

// TransactionDetails is a transaction with its origin and destination expanded.
type TransactionDetails struct {
	Transaction
	Origin      *Account `json:"origin"`
	Destination *Account `json:"destination"`
}
