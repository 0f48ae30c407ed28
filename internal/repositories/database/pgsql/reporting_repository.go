package pgsql

import (
	"context"
	"time"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository runs the aggregate queries behind the reports.
// Every query joins details to their voucher header and keeps only
// APPROVED vouchers of the requested tenant; nothing else ever reaches a
// report.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetOpeningBalance sums debit - credit over approved lines dated strictly
// before the given date.
func (r *PgxReportingRepository) GetOpeningBalance(ctx context.Context, tenantID int64, accountID int64, before time.Time) (domain.Money, error) {
	var balance int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(d.debit_amount - d.credit_amount), 0)
		FROM voucher_details d
		JOIN vouchers v ON v.voucher_id = d.voucher_id
		WHERE v.tenant_id = $1 AND v.status = $2
			AND d.account_id = $3 AND v.voucher_date < $4;
	`, tenantID, domain.Approved, accountID, before).Scan(&balance)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute opening balance", err)
	}
	return domain.Money(balance), nil
}

// GetAccountActivity returns the account's approved lines in the window,
// ordered by (voucher date, voucher number) so the running balance is
// deterministic.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, tenantID int64, accountID int64, fromDate, toDate time.Time) ([]portsrepo.AccountActivityLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT v.voucher_date, v.voucher_id, v.voucher_no, v.narration,
			d.line_narration, d.debit_amount, d.credit_amount
		FROM voucher_details d
		JOIN vouchers v ON v.voucher_id = d.voucher_id
		WHERE v.tenant_id = $1 AND v.status = $2
			AND d.account_id = $3
			AND v.voucher_date >= $4 AND v.voucher_date <= $5
		ORDER BY v.voucher_date, v.voucher_no, d.line_no;
	`, tenantID, domain.Approved, accountID, fromDate, toDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	var lines []portsrepo.AccountActivityLine
	for rows.Next() {
		var l portsrepo.AccountActivityLine
		var debit, credit int64
		if err := rows.Scan(&l.Date, &l.VoucherID, &l.VoucherNo, &l.VoucherNarration, &l.LineNarration, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity line", err)
		}
		l.Debit = domain.Money(debit)
		l.Credit = domain.Money(credit)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account activity", err)
	}
	return lines, nil
}

// GetAccountTotalsAsOf returns per-account debit/credit sums over approved
// lines dated on or before asOf.
func (r *PgxReportingRepository) GetAccountTotalsAsOf(ctx context.Context, tenantID int64, asOf time.Time) (map[int64]portsrepo.AccountTotals, error) {
	return r.accountTotals(ctx, `
		SELECT d.account_id, SUM(d.debit_amount), SUM(d.credit_amount)
		FROM voucher_details d
		JOIN vouchers v ON v.voucher_id = d.voucher_id
		WHERE v.tenant_id = $1 AND v.status = $2 AND v.voucher_date <= $3
		GROUP BY d.account_id;
	`, tenantID, domain.Approved, asOf)
}

// GetAccountTotalsBetween returns per-account debit/credit sums over
// approved lines inside the date window.
func (r *PgxReportingRepository) GetAccountTotalsBetween(ctx context.Context, tenantID int64, fromDate, toDate time.Time) (map[int64]portsrepo.AccountTotals, error) {
	return r.accountTotals(ctx, `
		SELECT d.account_id, SUM(d.debit_amount), SUM(d.credit_amount)
		FROM voucher_details d
		JOIN vouchers v ON v.voucher_id = d.voucher_id
		WHERE v.tenant_id = $1 AND v.status = $2
			AND v.voucher_date >= $3 AND v.voucher_date <= $4
		GROUP BY d.account_id;
	`, tenantID, domain.Approved, fromDate, toDate)
}

func (r *PgxReportingRepository) accountTotals(ctx context.Context, query string, args ...any) (map[int64]portsrepo.AccountTotals, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account totals", err)
	}
	defer rows.Close()

	totals := make(map[int64]portsrepo.AccountTotals)
	for rows.Next() {
		var t portsrepo.AccountTotals
		var debit, credit int64
		if err := rows.Scan(&t.AccountID, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals", err)
		}
		t.DebitTotal = domain.Money(debit)
		t.CreditTotal = domain.Money(credit)
		totals[t.AccountID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account totals", err)
	}
	return totals, nil
}
