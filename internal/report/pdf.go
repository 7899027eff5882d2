package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces the fixed-layout PDF report: title, three summary
// lines and one transactions table.
func RenderPDF(b Bundle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Financial Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	for _, line := range summaryLines(b) {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", line[0], line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	headers := []string{"Date", "Category", "Description", "Income", "Expense"}
	widths := []float64{28, 38, 64, 30, 30}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range b.Transactions {
		income, expense := splitAmounts(t)
		pdf.CellFormat(widths[0], 6, t.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, t.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, t.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, income, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, expense, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}
