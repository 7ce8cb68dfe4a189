package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the append-only transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OriginID      string          `db:"origin_id"`
	DestinationID *string         `db:"destination_id"` // NULL for deposits
	Amount        decimal.Decimal `db:"amount"`
	Reason        string          `db:"reason"`
	CreatedAt     time.Time       `db:"created_at"`
}
