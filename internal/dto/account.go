package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// CreateAccountFields lists the exact body keys accepted when opening an account.
var CreateAccountFields = []string{"customer", "deposit"}

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	CustomerID string `json:"customer" validate:"required,uuid"`
	Deposit    Money  `json:"deposit" validate:"gte=0"`
}

// Validate re-checks the request independently of the HTTP binding layer.
func (r CreateAccountRequest) Validate() error {
	if !isCanonicalUUID(r.CustomerID) {
		return fmt.Errorf("%w: invalid customer ID %q", apperrors.ErrValidation, r.CustomerID)
	}
	if err := domain.ValidateAmount(r.Deposit.Decimal); err != nil {
		return fmt.Errorf("%w: deposit %s: %s", apperrors.ErrValidation, r.Deposit.String(), err.Error())
	}
	return nil
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string    `json:"id"`
	CustomerID   string    `json:"customer"`
	Balance      Money     `json:"balance"`
	Transactions []string  `json:"transactions"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	txnIDs := acc.TransactionIDs
	if txnIDs == nil {
		txnIDs = []string{}
	}
	return AccountResponse{
		AccountID:    acc.AccountID,
		CustomerID:   acc.CustomerID,
		Balance:      NewMoney(acc.Balance),
		Transactions: txnIDs,
		CreatedAt:    acc.CreatedAt,
		UpdatedAt:    acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
