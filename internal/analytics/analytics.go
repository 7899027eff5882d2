// Package analytics aggregates transaction lists into the totals, category
// and time-bucket summaries used by analysis requests and report rendering.
// All functions are pure: they never mutate their input.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/models"
)

// TrendPoint is one point of the chronological trend projection
type TrendPoint struct {
	X int64           `json:"x"` // epoch milliseconds
	Y decimal.Decimal `json:"y"`
}

// SpendingPatterns holds expense sums bucketed by derived time keys.
// Buckets are created on first use; local calendar semantics apply.
type SpendingPatterns struct {
	ByWeekday     map[string]decimal.Decimal `json:"by_weekday"`
	ByHour        map[int]decimal.Decimal    `json:"by_hour"`
	ByWeekOfMonth map[int]decimal.Decimal    `json:"by_week_of_month"`
}

// Summary is the full derived view of a transaction list
type Summary struct {
	TotalIncome    decimal.Decimal            `json:"total_income"`
	TotalExpenses  decimal.Decimal            `json:"total_expenses"`
	Balance        decimal.Decimal            `json:"balance"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	Patterns       SpendingPatterns           `json:"spending_patterns"`
	Trend          []TrendPoint               `json:"trend"`
	Skipped        int                        `json:"skipped"`
}

// Aggregate computes totals, category sums, spending patterns and the trend
// projection for a list of transactions. Records without a usable date are
// skipped and counted in Summary.Skipped rather than producing bogus bucket
// keys.
func Aggregate(txs []models.Transaction) Summary {
	s := Summary{
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		Balance:        decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		Patterns: SpendingPatterns{
			ByWeekday:     make(map[string]decimal.Decimal),
			ByHour:        make(map[int]decimal.Decimal),
			ByWeekOfMonth: make(map[int]decimal.Decimal),
		},
	}

	valid := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.IsZero() {
			s.Skipped++
			continue
		}
		valid = append(valid, t)

		switch t.Type {
		case models.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case models.TypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			s.CategoryTotals[t.Category] = s.CategoryTotals[t.Category].Add(t.Amount)

			weekday := t.Date.Weekday().String()
			s.Patterns.ByWeekday[weekday] = s.Patterns.ByWeekday[weekday].Add(t.Amount)
			s.Patterns.ByHour[t.Date.Hour()] = s.Patterns.ByHour[t.Date.Hour()].Add(t.Amount)
			week := weekOfMonth(t.Date.Day())
			s.Patterns.ByWeekOfMonth[week] = s.Patterns.ByWeekOfMonth[week].Add(t.Amount)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.Trend = trend(valid)
	return s
}

// TopCategory returns the expense category with the largest total, or ""
// when there are no expenses.
func TopCategory(categoryTotals map[string]decimal.Decimal) string {
	var top string
	var topAmount decimal.Decimal
	for category, amount := range categoryTotals {
		if top == "" || amount.GreaterThan(topAmount) ||
			(amount.Equal(topAmount) && category < top) {
			top = category
			topAmount = amount
		}
	}
	return top
}

// SavingsRate returns the saved share of income in percent, 0 for zero income.
func SavingsRate(income, expenses decimal.Decimal) float64 {
	if income.IsZero() {
		return 0
	}
	rate, _ := income.Sub(expenses).Div(income).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}

// trend projects transactions into a chronologically sorted point sequence.
// The sort is stable so same-day records keep their input order.
func trend(txs []models.Transaction) []TrendPoint {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]TrendPoint, len(sorted))
	for i, t := range sorted {
		points[i] = TrendPoint{X: t.Date.UnixMilli(), Y: t.Amount}
	}
	return points
}

// weekOfMonth maps a day of month onto a 0-4 week index
func weekOfMonth(day int) int {
	return (day - 1) / 7
}
