package dto

import (
	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/acctsys/accounting_backend/internal/utils/money"
)

const reportDateFormat = "2006-01-02"

// LedgerEntryResponse is one row of an account ledger report.
type LedgerEntryResponse struct {
	Date           string `json:"date"`
	VoucherID      int64  `json:"voucherID"`
	VoucherNo      string `json:"voucherNo"`
	Narration      string `json:"narration"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	RunningBalance string `json:"runningBalance"`
}

// LedgerReportResponse is the ledger report of a single account.
type LedgerReportResponse struct {
	AccountID      int64                 `json:"accountID"`
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	FromDate       string                `json:"fromDate"`
	ToDate         string                `json:"toDate"`
	OpeningBalance string                `json:"openingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
	ClosingBalance string                `json:"closingBalance"`
}

// TrialBalanceRowResponse is one account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID        int64  `json:"accountID"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	AccountLevel     int    `json:"accountLevel"`
	IsControlAccount bool   `json:"isControlAccount"`
	DebitTotal       string `json:"debitTotal"`
	CreditTotal      string `json:"creditTotal"`
	NetBalance       string `json:"netBalance"`
}

// TrialBalanceResponse is the full trial balance report.
type TrialBalanceResponse struct {
	AsOfDate    string                    `json:"asOfDate"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  string                    `json:"totalDebit"`
	TotalCredit string                    `json:"totalCredit"`
}

// StatementLineResponse is one account line of a statement section.
type StatementLineResponse struct {
	AccountID   int64  `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Amount      string `json:"amount"`
}

// StatementSectionResponse groups statement lines of one account type.
type StatementSectionResponse struct {
	Name  string                  `json:"name"`
	Lines []StatementLineResponse `json:"lines"`
	Total string                  `json:"total"`
}

// StatementResponse is an income statement or balance sheet.
type StatementResponse struct {
	Title      string                     `json:"title"`
	FromDate   string                     `json:"fromDate,omitempty"`
	ToDate     string                     `json:"toDate,omitempty"`
	AsOfDate   string                     `json:"asOfDate,omitempty"`
	Sections   []StatementSectionResponse `json:"sections"`
	GrandTotal string                     `json:"grandTotal"`
}

// ToLedgerReportResponse converts a domain ledger report.
func ToLedgerReportResponse(r *domain.LedgerReport) LedgerReportResponse {
	entries := make([]LedgerEntryResponse, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = LedgerEntryResponse{
			Date:           e.Date.Format(reportDateFormat),
			VoucherID:      e.VoucherID,
			VoucherNo:      e.VoucherNo,
			Narration:      e.Narration,
			Debit:          money.Format(e.Debit),
			Credit:         money.Format(e.Credit),
			RunningBalance: money.Format(e.RunningBalance),
		}
	}
	return LedgerReportResponse{
		AccountID:      r.AccountID,
		AccountCode:    r.AccountCode,
		AccountName:    r.AccountName,
		FromDate:       r.FromDate.Format(reportDateFormat),
		ToDate:         r.ToDate.Format(reportDateFormat),
		OpeningBalance: money.Format(r.OpeningBalance),
		Entries:        entries,
		ClosingBalance: money.Format(r.ClosingBalance),
	}
}

// ToTrialBalanceResponse converts a domain trial balance report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:        row.AccountID,
			Code:             row.Code,
			Name:             row.Name,
			AccountLevel:     row.AccountLevel,
			IsControlAccount: row.IsControlAccount,
			DebitTotal:       money.Format(row.DebitTotal),
			CreditTotal:      money.Format(row.CreditTotal),
			NetBalance:       money.Format(row.NetBalance),
		}
	}
	return TrialBalanceResponse{
		AsOfDate:    r.AsOfDate.Format(reportDateFormat),
		Rows:        rows,
		TotalDebit:  money.Format(r.TotalDebit),
		TotalCredit: money.Format(r.TotalCredit),
	}
}

// ToStatementResponse converts a domain statement report.
func ToStatementResponse(r *domain.StatementReport) StatementResponse {
	sections := make([]StatementSectionResponse, len(r.Sections))
	for i, s := range r.Sections {
		lines := make([]StatementLineResponse, len(s.Lines))
		for j, l := range s.Lines {
			lines[j] = StatementLineResponse{
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				Amount:      money.Format(l.Amount),
			}
		}
		sections[i] = StatementSectionResponse{
			Name:  s.Name,
			Lines: lines,
			Total: money.Format(s.Total),
		}
	}
	resp := StatementResponse{
		Title:      r.Title,
		Sections:   sections,
		GrandTotal: money.Format(r.GrandTotal),
	}
	if r.FromDate != nil {
		resp.FromDate = r.FromDate.Format(reportDateFormat)
	}
	if r.ToDate != nil {
		resp.ToDate = r.ToDate.Format(reportDateFormat)
	}
	if r.AsOfDate != nil {
		resp.AsOfDate = r.AsOfDate.Format(reportDateFormat)
	}
	return resp
}
