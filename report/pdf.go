package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vamshi737/smartestimator/pricing"
)

// WriteSummaryPDF renders the one-page estimate summary.
func WriteSummaryPDF(path string, bd *pricing.Breakdown) error {
	s := bd.Summary
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Final Estimate Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Currency: "+orNA(s.Currency), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	writePDFTable(pdf, [][2]string{
		{"Section", "Amount"},
	}, summaryTable(s))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Assumptions", "", 1, "L", false, 0, "")
	writePDFTable(pdf, [][2]string{
		{"Assumption", "Value"},
	}, assumptionsTable(s))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("report: cannot write pdf %s: %w", path, err)
	}
	return nil
}

// WriteDetailedPDF renders the extended report with the regional
// comparison on top of the summary.
func WriteDetailedPDF(path string, bd *pricing.Breakdown, now time.Time) error {
	s := bd.Summary
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Final Estimate Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	meta := fmt.Sprintf("Generated: %s  |  Currency: %s", now.Format("2006-01-02 15:04"), orNA(s.Currency))
	pdf.CellFormat(0, 6, meta, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	writePDFTable(pdf, [][2]string{{"Section", "Amount"}}, summaryTable(s))
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Assumptions", "", 1, "L", false, 0, "")
	writePDFTable(pdf, [][2]string{{"Assumption", "Value"}}, assumptionsTable(s))
	pdf.Ln(5)

	in := bd.Subtotals["india"]
	us := bd.Subtotals["usa"]
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Regional Comparison (India vs USA)", "", 1, "L", false, 0, "")
	writePDFTable3(pdf, [3]string{"Category", "INDIA", "USA"}, [][3]string{
		{"Materials", money(in.Materials), money(us.Materials)},
		{"Labor", money(in.Labor), money(us.Labor)},
		{"Total", money(in.Materials + in.Labor), money(us.Materials + us.Labor)},
	})

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("report: cannot write pdf %s: %w", path, err)
	}
	return nil
}

func summaryTable(s pricing.Summary) [][2]string {
	values := summaryValues(s)
	rows := make([][2]string, len(summaryLabels))
	for i, label := range summaryLabels {
		rows[i] = [2]string{label, money(values[i])}
	}
	return rows
}

func assumptionsTable(s pricing.Summary) [][2]string {
	return [][2]string{
		{"Overhead %", fmt.Sprintf("%g", s.OverheadPct)},
		{"Contingency %", fmt.Sprintf("%g", s.ContingencyPct)},
		{"Profit %", fmt.Sprintf("%g", s.ProfitPct)},
		{"Tax %", fmt.Sprintf("%g", s.TaxPct)},
	}
}

func writePDFTable(pdf *gofpdf.Fpdf, header [][2]string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range header {
		pdf.CellFormat(80, 7, h[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 7, h[1], "1", 1, "R", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(80, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, r[1], "1", 1, "R", false, 0, "")
	}
}

func writePDFTable3(pdf *gofpdf.Fpdf, header [3]string, rows [][3]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 7, header[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, header[1], "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, header[2], "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(55, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, r[1], "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, r[2], "1", 1, "R", false, 0, "")
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
