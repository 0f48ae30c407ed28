package repositories

import (
	"context"
	"time"

	"github.com/acctsys/accounting_backend/internal/core/domain"
)

// AccountActivityLine is one approved voucher detail line joined with its
// voucher header, raw (unsigned) amounts as posted.
type AccountActivityLine struct {
	Date             time.Time
	VoucherID        int64
	VoucherNo        string
	VoucherNarration string
	LineNarration    string
	Debit            domain.Money
	Credit           domain.Money
}

// AccountTotals carries an account's gross debit and credit sums.
type AccountTotals struct {
	AccountID   int64
	DebitTotal  domain.Money
	CreditTotal domain.Money
}

// ReportingRepository provides the raw aggregates the reporting service
// shapes into reports. Every query is restricted to APPROVED vouchers of
// the given tenant; vouchers in any other status contribute nothing.
type ReportingRepository interface {
	// GetOpeningBalance returns sum(debit - credit) over all approved lines
	// of the account dated strictly before the given date.
	GetOpeningBalance(ctx context.Context, tenantID int64, accountID int64, before time.Time) (domain.Money, error)

	// GetAccountActivity returns the account's approved lines with
	// fromDate <= voucher date <= toDate, ordered by (date, voucher number).
	// That total order makes the running balance deterministic.
	GetAccountActivity(ctx context.Context, tenantID int64, accountID int64, fromDate, toDate time.Time) ([]AccountActivityLine, error)

	// GetAccountTotalsAsOf returns per-account debit/credit sums over all
	// approved lines dated <= asOf, keyed by account id. Accounts without
	// activity are absent from the map.
	GetAccountTotalsAsOf(ctx context.Context, tenantID int64, asOf time.Time) (map[int64]AccountTotals, error)

	// GetAccountTotalsBetween is the windowed variant used by the income
	// statement.
	GetAccountTotalsBetween(ctx context.Context, tenantID int64, fromDate, toDate time.Time) (map[int64]AccountTotals, error)
}
