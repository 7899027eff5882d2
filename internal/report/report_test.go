package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/teenbudget/backend/internal/models"
)

func testBundle() Bundle {
	d1, _ := time.Parse("2006-01-02", "2024-03-01")
	d2, _ := time.Parse("2006-01-02", "2024-03-02")
	return Bundle{
		TotalIncome:   decimal.NewFromInt(100),
		TotalExpenses: decimal.NewFromInt(40),
		Balance:       decimal.NewFromInt(60),
		Transactions: []models.Transaction{
			{Type: models.TypeIncome, Category: "Salary", Description: "allowance", Amount: decimal.NewFromInt(100), Date: d1},
			{Type: models.TypeExpense, Category: "Food", Description: "lunch", Amount: decimal.NewFromInt(40), Date: d2},
		},
		CategoryTotals: map[string]decimal.Decimal{
			"Food": decimal.NewFromInt(40),
		},
	}
}

func TestSummaryLinesSharedByBothFormats(t *testing.T) {
	lines := summaryLines(testBundle())

	want := [][2]string{
		{"Total Income", "100.00"},
		{"Total Expenses", "40.00"},
		{"Balance", "60.00"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d summary lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
		}
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testBundle())
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("PDF output is empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", data[:8])
	}
}

func TestRenderExcelEncodesSameSummary(t *testing.T) {
	b := testBundle()
	data, err := RenderExcel(b)
	if err != nil {
		t.Fatalf("RenderExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen rendered workbook: %v", err)
	}
	defer f.Close()

	for i, line := range summaryLines(b) {
		row := i + 1
		label, _ := f.GetCellValue(sheetSummary, fmt.Sprintf("A%d", row))
		value, _ := f.GetCellValue(sheetSummary, fmt.Sprintf("B%d", row))
		if label != line[0] || value != line[1] {
			t.Errorf("summary row %d = %q/%q, want %q/%q", row, label, value, line[0], line[1])
		}
	}

	// transactions sheet: signed amounts, one row per transaction
	amount, _ := f.GetCellValue(sheetTransactions, "D2")
	if amount != "100.00" {
		t.Errorf("income amount = %q, want 100.00", amount)
	}
	amount, _ = f.GetCellValue(sheetTransactions, "D3")
	if amount != "-40.00" {
		t.Errorf("expense amount = %q, want -40.00", amount)
	}

	category, _ := f.GetCellValue(sheetCategories, "A2")
	total, _ := f.GetCellValue(sheetCategories, "B2")
	if category != "Food" || total != "40.00" {
		t.Errorf("category row = %q/%q, want Food/40.00", category, total)
	}
}

func TestPDFAndExcelShareSummaryNumbers(t *testing.T) {
	b := testBundle()

	pdfData, err := RenderPDF(b)
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	xlsxData, err := RenderExcel(b)
	if err != nil {
		t.Fatalf("RenderExcel failed: %v", err)
	}
	if len(pdfData) == 0 || len(xlsxData) == 0 {
		t.Fatal("empty render output")
	}

	// both formats derive their summary text from summaryLines, so checking
	// the Excel cells against it covers the PDF content as well
	f, err := excelize.OpenReader(bytes.NewReader(xlsxData))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()
	value, _ := f.GetCellValue(sheetSummary, "B3")
	if value != b.Balance.StringFixed(2) {
		t.Errorf("balance cell = %q, want %q", value, b.Balance.StringFixed(2))
	}
}
