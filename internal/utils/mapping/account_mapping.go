package mapping

import (
	"github.com/SscSPs/mini_ledger/internal/core/domain"
	"github.com/SscSPs/mini_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		CustomerID:     d.CustomerID,
		Balance:        d.Balance,
		TransactionIDs: nonNilIDs(d.TransactionIDs),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		CustomerID:     m.CustomerID,
		Balance:        m.Balance,
		TransactionIDs: nonNilIDs(m.TransactionIDs),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
