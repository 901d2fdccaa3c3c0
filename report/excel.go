// Package report renders the run artifacts: the estimate workbook with
// summary, BOQ and comparison sheets, the PDF reports and the CSV export.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
)

const (
	sheetSummary = "Summary"
	sheetRates   = "Rates"
	sheetDetails = "Details"
	sheetBOQ     = "BOQ"
	sheetCompare = "Compare"
	sheetCharts  = "Charts"
)

// The Summary sheet layout is positional: the validator and the Charts
// sheet reference these rows directly.
const (
	summaryHeaderRow = 4
	summaryFirstRow  = 5
	summaryLastRow   = 12
)

var summaryLabels = []string{
	"Materials Subtotal",
	"Labor Subtotal",
	"Subtotal (Materials + Labor)",
	"Overheads",
	"Contingency",
	"Profit",
	"Tax",
	"Grand Total",
}

func summaryValues(s pricing.Summary) []float64 {
	return []float64{
		s.Materials,
		s.Labor,
		s.Materials + s.Labor,
		s.Overheads,
		s.Contingency,
		s.Profit,
		s.Tax,
		s.GrandTotal,
	}
}

// WriteWorkbook renders the full estimate workbook. The india and usa
// takeoffs may be nil when the run computed a single mode.
func WriteWorkbook(path string, bd *pricing.Breakdown, book *pricing.Book, india *qty.IndiaTotal, usa *qty.USAQuantities) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	if err := writeSummarySheet(f, bd); err != nil {
		return err
	}
	if err := writeRatesSheet(f, book); err != nil {
		return err
	}
	if err := writeDetailsSheet(f, bd); err != nil {
		return err
	}
	if err := writeBOQSheet(f, book, india, usa); err != nil {
		return err
	}
	if err := writeCompareSheet(f, bd); err != nil {
		return err
	}
	if err := writeChartsSheet(f, bd); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: cannot save workbook %s: %w", path, err)
	}
	return nil
}

func styles(f *excelize.File) (title, bold, money int, err error) {
	title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return
	}
	bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return
	}
	// Built-in format 4 is "#,##0.00".
	money, err = f.NewStyle(&excelize.Style{NumFmt: 4})
	return
}

func writeSummarySheet(f *excelize.File, bd *pricing.Breakdown) error {
	title, bold, money, err := styles(f)
	if err != nil {
		return err
	}
	s := bd.Summary

	f.SetCellValue(sheetSummary, "A1", "Final Estimate Summary")
	f.SetCellStyle(sheetSummary, "A1", "A1", title)
	f.SetCellValue(sheetSummary, "A2", "Currency: "+s.Currency)

	f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", summaryHeaderRow), &[]interface{}{"Section", "Amount"})
	f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", summaryHeaderRow), fmt.Sprintf("B%d", summaryHeaderRow), bold)

	values := summaryValues(s)
	for i, label := range summaryLabels {
		r := summaryFirstRow + i
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", r), label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", r), values[i])
	}
	f.SetCellStyle(sheetSummary, fmt.Sprintf("B%d", summaryFirstRow), fmt.Sprintf("B%d", summaryLastRow), money)
	f.SetColWidth(sheetSummary, "A", "A", 30)
	f.SetColWidth(sheetSummary, "B", "B", 18)
	return nil
}

func writeRatesSheet(f *excelize.File, book *pricing.Book) error {
	if _, err := f.NewSheet(sheetRates); err != nil {
		return err
	}
	title, bold, _, err := styles(f)
	if err != nil {
		return err
	}
	f.SetCellValue(sheetRates, "A1", "Pricing Knobs")
	f.SetCellStyle(sheetRates, "A1", "A1", title)
	f.SetSheetRow(sheetRates, "A3", &[]interface{}{"Key", "Value"})
	f.SetCellStyle(sheetRates, "A3", "B3", bold)

	g := book.Global
	rows := []struct {
		key   string
		value interface{}
	}{
		{"currency", g.Currency},
		{"overhead_pct", g.OverheadPct},
		{"contingency_pct", g.ContingencyPct},
		{"profit_pct", g.ProfitPct},
		{"tax_pct", g.TaxPct},
	}
	for i, row := range rows {
		f.SetSheetRow(sheetRates, fmt.Sprintf("A%d", 4+i), &[]interface{}{row.key, row.value})
	}
	f.SetColWidth(sheetRates, "A", "B", 20)
	return nil
}

func writeDetailsSheet(f *excelize.File, bd *pricing.Breakdown) error {
	if _, err := f.NewSheet(sheetDetails); err != nil {
		return err
	}
	title, bold, money, err := styles(f)
	if err != nil {
		return err
	}
	f.SetCellValue(sheetDetails, "A1", "Input Subtotals")
	f.SetCellStyle(sheetDetails, "A1", "A1", title)
	f.SetSheetRow(sheetDetails, "A3", &[]interface{}{"Source", "Materials", "Labor"})
	f.SetCellStyle(sheetDetails, "A3", "C3", bold)

	r := 4
	for _, region := range []string{"india", "usa"} {
		sub := bd.Subtotals[region]
		f.SetSheetRow(sheetDetails, fmt.Sprintf("A%d", r), &[]interface{}{
			strings.ToUpper(region), sub.Materials, sub.Labor,
		})
		r++
	}
	f.SetCellStyle(sheetDetails, "B4", fmt.Sprintf("C%d", r-1), money)
	f.SetColWidth(sheetDetails, "A", "C", 16)
	return nil
}
