// Package model defines the ledger's domain records and their boundary input schema.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// maxAmountDigits bounds the integer digits of an amount; float64 overflows past ~1.8e308.
const maxAmountDigits = 309

// ErrAmountOutOfRange is returned for amounts that are not finite as a float64.
var ErrAmountOutOfRange = errors.New("amount out of range")

// ValidAmount reports whether amount can be stored and read back as a finite number.
func ValidAmount(amount decimal.Decimal) bool {
	if amount.IsZero() {
		return true
	}
	if int64(amount.NumDigits())+int64(amount.Exponent()) > maxAmountDigits {
		return false
	}
	f := amount.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Transaction is one signed monetary entry in the ledger.
// A zero ID means the transaction has not been persisted yet.
type Transaction struct {
	ID          int64
	Description string
	Amount      decimal.Decimal // negative = expense, positive or zero = income
	Date        Date
}

// IsIncome reports whether the amount is non-negative.
func (t Transaction) IsIncome() bool {
	return !t.Amount.IsNegative()
}

// String renders the transaction for console listings.
// Example: [05-01-2024] Salário (ID: 1): R$ +5000.00
func (t Transaction) String() string {
	sign := ""
	if t.IsIncome() {
		sign = "+"
	}

	idPart := ""
	if t.ID != 0 {
		idPart = fmt.Sprintf(" (ID: %d)", t.ID)
	}

	return fmt.Sprintf("[%s] %s%s: R$ %s%s", t.Date.Display(), t.Description, idPart, sign, t.Amount.StringFixed(2))
}
