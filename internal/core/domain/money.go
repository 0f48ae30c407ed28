package domain

import "fmt"

// Money is a monetary amount in minor units (e.g. cents, paise).
// Integer arithmetic keeps the debit/credit balance invariant exact;
// conversion to and from display decimals happens at the HTTP edge.
type Money int64

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Neg returns -m.
func (m Money) Neg() Money {
	return -m
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// ReportedAmount applies the normal-balance sign convention for an account
// type to raw debit/credit totals:
//
//	ASSET, EXPENSE      -> debit - credit
//	LIABILITY, EQUITY, REVENUE -> credit - debit
func ReportedAmount(accountType AccountType, debit, credit Money) (Money, error) {
	switch accountType {
	case Asset, Expense:
		return debit.Sub(credit), nil
	case Liability, Equity, Revenue:
		return credit.Sub(debit), nil
	default:
		return 0, fmt.Errorf("unknown account type '%s'", accountType)
	}
}
