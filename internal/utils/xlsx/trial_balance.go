// Package xlsx renders reports as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/acctsys/accounting_backend/internal/utils/money"
	"github.com/xuri/excelize/v2"
)

const trialBalanceSheet = "Trial Balance"

// TrialBalanceWorkbook renders the trial balance as a single-sheet
// workbook: a header row, one row per account, and a totals row. Amounts
// are written as numbers so spreadsheet formulas work on them directly.
func TrialBalanceWorkbook(report *domain.TrialBalanceReport) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(trialBalanceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Code", "Account", "Level", "Control", "Debit", "Credit", "Net Balance"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(trialBalanceSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range report.Rows {
		values := []any{
			row.Code,
			row.Name,
			row.AccountLevel,
			row.IsControlAccount,
			amountCell(row.DebitTotal),
			amountCell(row.CreditTotal),
			amountCell(row.NetBalance),
		}
		if err := setRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	totalsRow := len(report.Rows) + 2
	totals := []any{
		"",
		"Total",
		"",
		"",
		amountCell(report.TotalDebit),
		amountCell(report.TotalCredit),
		"",
	}
	if err := setRow(f, totalsRow, totals); err != nil {
		return nil, err
	}

	return f, nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(trialBalanceSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// amountCell converts minor units to the major-unit float Excel displays.
// Exactness matters in the JSON API, not here; float64 holds every minor
// unit value a workbook realistically carries.
func amountCell(m domain.Money) float64 {
	v, _ := money.ToDecimal(m).Float64()
	return v
}
