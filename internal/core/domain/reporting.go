package domain

import "time"

// LedgerEntry is one posted line in an account ledger, carrying the
// running balance after the line was applied.
type LedgerEntry struct {
	Date           time.Time `json:"date"`
	VoucherID      int64     `json:"voucherID"`
	VoucherNo      string    `json:"voucherNo"`
	Narration      string    `json:"narration"`
	Debit          Money     `json:"debit"`
	Credit         Money     `json:"credit"`
	RunningBalance Money     `json:"runningBalance"`
}

// LedgerReport is the running-balance statement of a single account
// over a date range.
type LedgerReport struct {
	AccountID      int64         `json:"accountID"`
	AccountCode    string        `json:"accountCode"`
	AccountName    string        `json:"accountName"`
	FromDate       time.Time     `json:"fromDate"`
	ToDate         time.Time     `json:"toDate"`
	OpeningBalance Money         `json:"openingBalance"`
	Entries        []LedgerEntry `json:"entries"`
	ClosingBalance Money         `json:"closingBalance"`
}

// TrialBalanceRow holds one account's gross debit and credit totals.
// Debit and credit are summed separately, never netted.
type TrialBalanceRow struct {
	AccountID        int64  `json:"accountID"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	AccountLevel     int    `json:"accountLevel"`
	IsControlAccount bool   `json:"isControlAccount"`
	DebitTotal       Money  `json:"debitTotal"`
	CreditTotal      Money  `json:"creditTotal"`
	NetBalance       Money  `json:"netBalance"`
}

// TrialBalanceReport lists every account of the tenant, active or not,
// sorted by account code. TotalDebit must equal TotalCredit when all
// approved vouchers are individually balanced.
type TrialBalanceReport struct {
	AsOfDate    time.Time         `json:"asOfDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  Money             `json:"totalDebit"`
	TotalCredit Money             `json:"totalCredit"`
}

// StatementLine is one account line inside a statement section, with the
// normal-balance sign convention already applied.
type StatementLine struct {
	AccountID   int64  `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Amount      Money  `json:"amount"`
}

// StatementSection groups statement lines of one account type.
type StatementSection struct {
	Name  string          `json:"name"`
	Lines []StatementLine `json:"lines"`
	Total Money           `json:"total"`
}

// StatementReport is an income statement or balance sheet. For the income
// statement GrandTotal is the period's net income; for the balance sheet
// it is the self-check assets - (liabilities + equity), expected zero.
type StatementReport struct {
	Title      string             `json:"title"`
	FromDate   *time.Time         `json:"fromDate,omitempty"`
	ToDate     *time.Time         `json:"toDate,omitempty"`
	AsOfDate   *time.Time         `json:"asOfDate,omitempty"`
	Sections   []StatementSection `json:"sections"`
	GrandTotal Money              `json:"grandTotal"`
}

// RetainedEarningsAccountID is the synthetic account id carried by the
// derived Net Income (Retained Earnings) balance sheet line.
const RetainedEarningsAccountID int64 = 0

// RetainedEarningsCode and RetainedEarningsName label that line.
const (
	RetainedEarningsCode = "RE"
	RetainedEarningsName = "Net Income (Retained Earnings)"
)
