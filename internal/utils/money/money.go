// Package money converts between the engine's int64 minor-unit amounts and
// the decimal strings exchanged with API clients.
package money

import (
	"fmt"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of decimal places carried by the
// currency's minor unit. Fixed at 2 (cents/paise); multi-currency
// handling is out of scope.
const minorUnitExponent = 2

// FromDecimal converts a major-unit decimal (e.g. "120.50") to minor
// units. Amounts with sub-minor precision are rejected rather than
// rounded, so nothing posted can drift from what the caller typed.
func FromDecimal(d decimal.Decimal) (domain.Money, error) {
	shifted := d.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), minorUnitExponent)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s overflows the minor-unit range", d.String())
	}
	return domain.Money(shifted.IntPart()), nil
}

// FromString parses a decimal string into minor units.
func FromString(s string) (domain.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// ToDecimal converts minor units back to a major-unit decimal.
func ToDecimal(m domain.Money) decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExponent)
}

// Format renders minor units as a fixed two-decimal string for responses
// and exports.
func Format(m domain.Money) string {
	return ToDecimal(m).StringFixed(minorUnitExponent)
}
