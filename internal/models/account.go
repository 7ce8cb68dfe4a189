package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row shape of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	CustomerID     string          `db:"customer_id"`
	Balance        decimal.Decimal `db:"balance"`         // NUMERIC(20,4), CHECK >= 0
	TransactionIDs []string        `db:"transaction_ids"` // TEXT[] in insertion order
	AuditFields
}
