// Package report renders a totals/transactions bundle into downloadable
// PDF or Excel documents.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/models"
)

// Fixed download filenames
const (
	PDFFilename   = "financial-report.pdf"
	ExcelFilename = "financial-report.xlsx"
)

// Bundle is the input to both renderers
type Bundle struct {
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Balance        decimal.Decimal
	Transactions   []models.Transaction
	CategoryTotals map[string]decimal.Decimal
}

// summaryLines returns the three summary rows both renderers must encode.
// PDF and Excel share this so the two formats cannot drift apart.
func summaryLines(b Bundle) [][2]string {
	return [][2]string{
		{"Total Income", b.TotalIncome.StringFixed(2)},
		{"Total Expenses", b.TotalExpenses.StringFixed(2)},
		{"Balance", b.Balance.StringFixed(2)},
	}
}

// sortedCategories returns category names in a stable order
func sortedCategories(totals map[string]decimal.Decimal) []string {
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// splitAmounts renders the income-or-blank / expense-or-blank column pair
func splitAmounts(t models.Transaction) (income, expense string) {
	if t.Type == models.TypeIncome {
		return t.Amount.StringFixed(2), ""
	}
	return "", t.Amount.StringFixed(2)
}
