package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount that is rendered as a bare JSON number.
// Input accepts both numbers and numeric strings.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal for the API layer.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// isCanonicalUUID reports whether s is a UUID in its 36-character hyphenated form.
func isCanonicalUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
