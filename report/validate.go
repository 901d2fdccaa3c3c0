package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vamshi737/smartestimator/pricing"
)

// validateTol absorbs the rounding that happens on the way into cells.
const validateTol = 0.5

// ValidateWorkbook reopens a saved workbook and checks its key totals
// against the breakdown they were rendered from.
func ValidateWorkbook(path string, bd *pricing.Breakdown) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("report: cannot open workbook %s: %w", path, err)
	}
	defer f.Close()

	var issues []string
	check := func(what string, got, want float64) {
		if math.Abs(got-want) > validateTol {
			issues = append(issues, fmt.Sprintf("%s: workbook has %.2f, breakdown has %.2f", what, got, want))
		}
	}

	s := bd.Summary
	check("materials subtotal", findLabeledValue(f, sheetSummary, "Materials Subtotal"), s.Materials)
	check("labor subtotal", findLabeledValue(f, sheetSummary, "Labor Subtotal"), s.Labor)
	check("grand total", findLabeledValue(f, sheetSummary, "Grand Total"), s.GrandTotal)

	in := bd.Subtotals["india"]
	us := bd.Subtotals["usa"]
	check("india materials", cellFloat(f, sheetCompare, "B4"), in.Materials)
	check("usa materials", cellFloat(f, sheetCompare, "C4"), us.Materials)
	check("india labor", cellFloat(f, sheetCompare, "B5"), in.Labor)
	check("usa labor", cellFloat(f, sheetCompare, "C5"), us.Labor)

	if len(issues) > 0 {
		return fmt.Errorf("report: workbook mismatch: %s", strings.Join(issues, "; "))
	}
	return nil
}

// findLabeledValue scans column A for the label and returns the column B
// value on the same row.
func findLabeledValue(f *excelize.File, sheet, label string) float64 {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return math.NaN()
	}
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), label) {
			return cellFloat(f, sheet, fmt.Sprintf("B%d", i+1))
		}
	}
	return math.NaN()
}

func cellFloat(f *excelize.File, sheet, cell string) float64 {
	raw, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return math.NaN()
	}
	// Cells carry a "#,##0.00" display format.
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
