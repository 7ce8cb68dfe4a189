package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/core/domain"
)

// TransferFundsFields lists the exact body keys accepted for a transfer.
var TransferFundsFields = []string{"origin", "destination", "amount"}

// TransferFundsRequest defines the data needed to move funds between accounts.
type TransferFundsRequest struct {
	OriginID      string `json:"origin" validate:"required,uuid"`
	DestinationID string `json:"destination" validate:"required,uuid"`
	Amount        Money  `json:"amount" validate:"gte=0"`
}

// Validate re-checks the request independently of the HTTP binding layer.
func (r TransferFundsRequest) Validate() error {
	if !isCanonicalUUID(r.OriginID) {
		return fmt.Errorf("%w: invalid origin account ID %q", apperrors.ErrValidation, r.OriginID)
	}
	if !isCanonicalUUID(r.DestinationID) {
		return fmt.Errorf("%w: invalid destination account ID %q", apperrors.ErrValidation, r.DestinationID)
	}
	if err := domain.ValidateAmount(r.Amount.Decimal); err != nil {
		return fmt.Errorf("%w: transfer %s: %s", apperrors.ErrValidation, r.Amount.String(), err.Error())
	}
	if r.OriginID == r.DestinationID {
		return apperrors.ErrSameAccount
	}
	return nil
}

// TransactionResponse defines the data returned for a log entry.
type TransactionResponse struct {
	TransactionID string    `json:"id"`
	OriginID      string    `json:"origin"`
	DestinationID *string   `json:"destination"`
	Amount        Money     `json:"amount"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionDetailsResponse is a transaction with origin and destination accounts expanded.
type TransactionDetailsResponse struct {
	TransactionID string           `json:"id"`
	Origin        *AccountResponse `json:"origin"`
	Destination   *AccountResponse `json:"destination"`
	Amount        Money            `json:"amount"`
	Reason        string           `json:"reason"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		OriginID:      t.OriginID,
		DestinationID: t.DestinationID,
		Amount:        NewMoney(t.Amount),
		Reason:        string(t.Reason),
		CreatedAt:     t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ToTransactionDetailsResponse converts a domain.TransactionDetails to its DTO
func ToTransactionDetailsResponse(d *domain.TransactionDetails) TransactionDetailsResponse {
	res := TransactionDetailsResponse{
		TransactionID: d.TransactionID,
		Amount:        NewMoney(d.Amount),
		Reason:        string(d.Reason),
		CreatedAt:     d.CreatedAt,
	}
	if d.Origin != nil {
		origin := ToAccountResponse(d.Origin)
		res.Origin = &origin
	}
	if d.Destination != nil {
		dest := ToAccountResponse(d.Destination)
		res.Destination = &dest
	}
	return res
}
