package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding ledger entity owned by one customer.
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary Key (UUID)
	CustomerID     string          `json:"customerID"`     // FK -> customers.customer_id, immutable
	Balance        decimal.Decimal `json:"balance"`        // Never negative
	TransactionIDs []string        `json:"transactionIDs"` // Linked log entries in insertion order
	AuditFields
}

// CanCover reports whether the account balance is at least amount.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// CanHold reports whether crediting amount keeps the balance below MaxAmount.
func (a Account) CanHold(amount decimal.Decimal) bool {
	return a.Balance.Add(amount).LessThan(MaxAmount)
}
