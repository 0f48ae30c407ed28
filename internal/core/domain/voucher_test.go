package domain_test

import (
	"testing"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.VoucherStatus
		to      domain.VoucherStatus
		allowed bool
	}{
		{"draft to verified", domain.Draft, domain.Verified, true},
		{"verified to approved", domain.Verified, domain.Approved, true},
		{"draft to rejected", domain.Draft, domain.Rejected, true},
		{"verified to rejected", domain.Verified, domain.Rejected, true},
		{"draft to approved skips verification", domain.Draft, domain.Approved, false},
		{"approved is terminal", domain.Approved, domain.Rejected, false},
		{"rejected is terminal", domain.Rejected, domain.Verified, false},
		{"no going back to draft", domain.Verified, domain.Draft, false},
		{"approved cannot re-verify", domain.Approved, domain.Verified, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, domain.Draft.IsTerminal())
	assert.False(t, domain.Verified.IsTerminal())
	assert.True(t, domain.Approved.IsTerminal())
	assert.True(t, domain.Rejected.IsTerminal())
}

func TestReportedAmount(t *testing.T) {
	// 800 debits against 300 credits.
	debit, credit := domain.Money(800), domain.Money(300)

	asset, err := domain.ReportedAmount(domain.Asset, debit, credit)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(500), asset)

	expense, err := domain.ReportedAmount(domain.Expense, debit, credit)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(500), expense)

	liability, err := domain.ReportedAmount(domain.Liability, debit, credit)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(-500), liability)

	equity, err := domain.ReportedAmount(domain.Equity, debit, credit)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(-500), equity)

	revenue, err := domain.ReportedAmount(domain.Revenue, debit, credit)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(-500), revenue)

	_, err = domain.ReportedAmount(domain.AccountType("BOGUS"), debit, credit)
	assert.Error(t, err)
}
