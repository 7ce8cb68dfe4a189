package mapping

import (
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/SscSPs/mini_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OriginID:      d.OriginID,
		DestinationID: d.DestinationID,
		Amount:        d.Amount,
		Reason:        string(d.Reason),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OriginID:      m.OriginID,
		DestinationID: m.DestinationID,
		Amount:        m.Amount,
		Reason:        domain.Reason(m.Reason),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
