package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for amounts and balances.
const AmountScale = 4

// MaxAmount is the exclusive upper bound for any amount or balance.
var MaxAmount = decimal.New(1, 16)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrAmountPrecision = fmt.Errorf("amount must have at most %d decimal places", AmountScale)
	ErrAmountRange     = fmt.Errorf("amount must be less than %s", MaxAmount)
)

// ValidateAmount checks that amount is non-negative and fits the stored
// NUMERIC(20,4) representation exactly, so no store rounds it.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrAmountPrecision
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return ErrAmountRange
	}
	return nil
}
