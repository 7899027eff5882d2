package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/teenbudget/backend/internal/models"
)

// Sheet names of the Excel report
const (
	sheetSummary      = "Summary"
	sheetTransactions = "Transactions"
	sheetCategories   = "Category Totals"
)

// RenderExcel produces the three-sheet spreadsheet report
func RenderExcel(b Bundle) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	for i, line := range summaryLines(b) {
		row := i + 1
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), line[0])
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), line[1])
	}

	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return nil, fmt.Errorf("failed to create transactions sheet: %w", err)
	}
	f.SetCellValue(sheetTransactions, "A1", "Date")
	f.SetCellValue(sheetTransactions, "B1", "Category")
	f.SetCellValue(sheetTransactions, "C1", "Description")
	f.SetCellValue(sheetTransactions, "D1", "Amount")
	for i, t := range b.Transactions {
		row := i + 2
		amount := t.Amount
		if t.Type == models.TypeExpense {
			amount = amount.Neg()
		}
		f.SetCellValue(sheetTransactions, fmt.Sprintf("A%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheetTransactions, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetTransactions, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheetTransactions, fmt.Sprintf("D%d", row), amount.StringFixed(2))
	}

	if _, err := f.NewSheet(sheetCategories); err != nil {
		return nil, fmt.Errorf("failed to create category sheet: %w", err)
	}
	f.SetCellValue(sheetCategories, "A1", "Category")
	f.SetCellValue(sheetCategories, "B1", "Total")
	for i, category := range sortedCategories(b.CategoryTotals) {
		row := i + 2
		f.SetCellValue(sheetCategories, fmt.Sprintf("A%d", row), category)
		f.SetCellValue(sheetCategories, fmt.Sprintf("B%d", row), b.CategoryTotals[category].StringFixed(2))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render Excel report: %w", err)
	}
	return buf.Bytes(), nil
}
