package services

import (
	"context"
	"time"

	"github.com/acctsys/accounting_backend/internal/core/domain"
)

// ReportingSvcFacade derives financial statements from approved vouchers.
// All operations are pure reads.
type ReportingSvcFacade interface {
	// GetLedger computes the running-balance statement of one account over
	// [fromDate, toDate].
	GetLedger(ctx context.Context, tenantID int64, accountID int64, fromDate, toDate time.Time) (*domain.LedgerReport, error)

	// GetTrialBalance lists gross debit/credit totals for every account of
	// the tenant as of a date.
	GetTrialBalance(ctx context.Context, tenantID int64, asOfDate time.Time) (*domain.TrialBalanceReport, error)

	// GetIncomeStatement builds the Revenue/Expense statement for a period.
	GetIncomeStatement(ctx context.Context, tenantID int64, fromDate, toDate time.Time) (*domain.StatementReport, error)

	// GetBalanceSheet builds the point-in-time Asset/Liability/Equity
	// statement, including the derived retained-earnings equity line.
	GetBalanceSheet(ctx context.Context, tenantID int64, asOfDate time.Time) (*domain.StatementReport, error)
}
