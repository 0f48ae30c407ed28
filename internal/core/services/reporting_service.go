package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
)

// reportingService derives financial statements from approved vouchers.
// It never writes; visibility of a voucher is decided solely by the
// workflow engine's approve transition.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetLedger computes the running-balance statement of one account.
// Rows are ordered by (voucher date, voucher number); each row carries the
// balance after the line was applied, starting from the opening balance.
func (s *reportingService) GetLedger(ctx context.Context, tenantID int64, accountID int64, fromDate, toDate time.Time) (*domain.LedgerReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	openingBalance, err := s.reportingRepo.GetOpeningBalance(ctx, tenantID, accountID, fromDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, accountID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account activity", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch account activity: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(activity))
	runningBalance := openingBalance
	for _, line := range activity {
		runningBalance = runningBalance.Add(line.Debit.Sub(line.Credit))
		narration := line.LineNarration
		if narration == "" {
			narration = line.VoucherNarration
		}
		entries = append(entries, domain.LedgerEntry{
			Date:           line.Date,
			VoucherID:      line.VoucherID,
			VoucherNo:      line.VoucherNo,
			Narration:      narration,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: runningBalance,
		})
	}

	s.LogInfo(ctx, "Ledger report generated",
		slog.Int64("account_id", accountID),
		slog.Int("entry_count", len(entries)))
	return &domain.LedgerReport{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		FromDate:       fromDate,
		ToDate:         toDate,
		OpeningBalance: openingBalance,
		Entries:        entries,
		ClosingBalance: runningBalance,
	}, nil
}

// GetTrialBalance lists gross debit and credit totals for every account of
// the tenant as of a date. Accounts without activity appear with zero
// totals so the report reflects the full chart; rows are sorted by code.
// Parent balances are not consolidated: each account shows its own postings.
func (s *reportingService) GetTrialBalance(ctx context.Context, tenantID int64, asOfDate time.Time) (*domain.TrialBalanceReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, tenantID, asOfDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.Int64("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	var totalDebit, totalCredit domain.Money
	for _, acc := range accounts {
		t := totals[acc.AccountID]
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:        acc.AccountID,
			Code:             acc.Code,
			Name:             acc.Name,
			AccountLevel:     acc.AccountLevel,
			IsControlAccount: acc.IsControlAccount,
			DebitTotal:       t.DebitTotal,
			CreditTotal:      t.CreditTotal,
			NetBalance:       t.DebitTotal.Sub(t.CreditTotal),
		})
		totalDebit = totalDebit.Add(t.DebitTotal)
		totalCredit = totalCredit.Add(t.CreditTotal)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	s.LogInfo(ctx, "Trial balance generated",
		slog.Int64("tenant_id", tenantID),
		slog.Int("row_count", len(rows)))
	return &domain.TrialBalanceReport{
		AsOfDate:    asOfDate,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// GetIncomeStatement builds the Revenue and Expense sections for a period.
// An account appears only when its reported amount is nonzero; the grand
// total is the period's net income (revenue minus expense).
func (s *reportingService) GetIncomeStatement(ctx context.Context, tenantID int64, fromDate, toDate time.Time) (*domain.StatementReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.reportingRepo.GetAccountTotalsBetween(ctx, tenantID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data", slog.Int64("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	revenue := domain.StatementSection{Name: "Revenue"}
	expense := domain.StatementSection{Name: "Expense"}
	for _, acc := range sortedByCode(accounts) {
		if acc.AccountType != domain.Revenue && acc.AccountType != domain.Expense {
			continue
		}
		t := totals[acc.AccountID]
		amount, err := domain.ReportedAmount(acc.AccountType, t.DebitTotal, t.CreditTotal)
		if err != nil {
			return nil, err
		}
		if amount.IsZero() {
			continue
		}
		line := domain.StatementLine{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Amount:      amount,
		}
		if acc.AccountType == domain.Revenue {
			revenue.Lines = append(revenue.Lines, line)
			revenue.Total = revenue.Total.Add(amount)
		} else {
			expense.Lines = append(expense.Lines, line)
			expense.Total = expense.Total.Add(amount)
		}
	}

	s.LogInfo(ctx, "Income statement generated",
		slog.Int64("tenant_id", tenantID),
		slog.Int("revenue_accounts", len(revenue.Lines)),
		slog.Int("expense_accounts", len(expense.Lines)))
	return &domain.StatementReport{
		Title:      "Income Statement",
		FromDate:   &fromDate,
		ToDate:     &toDate,
		Sections:   []domain.StatementSection{revenue, expense},
		GrandTotal: revenue.Total.Sub(expense.Total),
	}, nil
}

// GetBalanceSheet builds the point-in-time Asset, Liability and Equity
// sections, then appends the derived Net Income (Retained Earnings) line to
// Equity: the all-history revenue-minus-expense total up to asOfDate. The
// grand total is the self-check assets - (liabilities + equity), expected
// zero for a balanced ledger.
func (s *reportingService) GetBalanceSheet(ctx context.Context, tenantID int64, asOfDate time.Time) (*domain.StatementReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, tenantID, asOfDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.Int64("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	assets := domain.StatementSection{Name: "Assets"}
	liabilities := domain.StatementSection{Name: "Liabilities"}
	equity := domain.StatementSection{Name: "Equity"}
	var netIncome domain.Money

	for _, acc := range sortedByCode(accounts) {
		t := totals[acc.AccountID]
		amount, err := domain.ReportedAmount(acc.AccountType, t.DebitTotal, t.CreditTotal)
		if err != nil {
			return nil, err
		}

		switch acc.AccountType {
		case domain.Revenue, domain.Expense:
			// Accumulated into the derived retained-earnings line rather
			// than shown as sections of their own.
			if acc.AccountType == domain.Revenue {
				netIncome = netIncome.Add(amount)
			} else {
				netIncome = netIncome.Sub(amount)
			}
			continue
		}
		if amount.IsZero() {
			continue
		}

		line := domain.StatementLine{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Amount:      amount,
		}
		switch acc.AccountType {
		case domain.Asset:
			assets.Lines = append(assets.Lines, line)
			assets.Total = assets.Total.Add(amount)
		case domain.Liability:
			liabilities.Lines = append(liabilities.Lines, line)
			liabilities.Total = liabilities.Total.Add(amount)
		case domain.Equity:
			equity.Lines = append(equity.Lines, line)
			equity.Total = equity.Total.Add(amount)
		}
	}

	if !netIncome.IsZero() {
		equity.Lines = append(equity.Lines, domain.StatementLine{
			AccountID:   domain.RetainedEarningsAccountID,
			AccountCode: domain.RetainedEarningsCode,
			AccountName: domain.RetainedEarningsName,
			Amount:      netIncome,
		})
		equity.Total = equity.Total.Add(netIncome)
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.Int64("tenant_id", tenantID),
		slog.Int("asset_accounts", len(assets.Lines)),
		slog.Int("liability_accounts", len(liabilities.Lines)),
		slog.Int("equity_accounts", len(equity.Lines)))
	return &domain.StatementReport{
		Title:      "Balance Sheet",
		AsOfDate:   &asOfDate,
		Sections:   []domain.StatementSection{assets, liabilities, equity},
		GrandTotal: assets.Total.Sub(liabilities.Total.Add(equity.Total)),
	}, nil
}

// sortedByCode returns the accounts ordered by code for deterministic
// report output.
func sortedByCode(accounts []domain.Account) []domain.Account {
	sorted := make([]domain.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	return sorted
}
