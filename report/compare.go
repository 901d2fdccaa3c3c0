package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vamshi737/smartestimator/pricing"
)

// The Compare sheet layout is positional like Summary: the validator
// reads B4:C5 and the charts reference rows 3..6 and 9..11.
func writeCompareSheet(f *excelize.File, bd *pricing.Breakdown) error {
	if _, err := f.NewSheet(sheetCompare); err != nil {
		return err
	}
	title, bold, money, err := styles(f)
	if err != nil {
		return err
	}
	in := bd.Subtotals["india"]
	us := bd.Subtotals["usa"]

	f.SetCellValue(sheetCompare, "A1", "India vs USA - Comparative Costs")
	f.SetCellStyle(sheetCompare, "A1", "A1", title)

	f.SetSheetRow(sheetCompare, "A3", &[]interface{}{"Category", "INDIA", "USA"})
	f.SetCellStyle(sheetCompare, "A3", "C3", bold)
	f.SetSheetRow(sheetCompare, "A4", &[]interface{}{"Materials", in.Materials, us.Materials})
	f.SetSheetRow(sheetCompare, "A5", &[]interface{}{"Labor", in.Labor, us.Labor})
	f.SetSheetRow(sheetCompare, "A6", &[]interface{}{"Grand Total", in.Materials + in.Labor, us.Materials + us.Labor})
	f.SetCellStyle(sheetCompare, "B4", "C6", money)

	f.SetCellValue(sheetCompare, "A8", "Distribution")
	f.SetCellStyle(sheetCompare, "A8", "A8", bold)
	f.SetSheetRow(sheetCompare, "A9", &[]interface{}{"Component", "INDIA", "USA"})
	f.SetCellStyle(sheetCompare, "A9", "C9", bold)
	f.SetSheetRow(sheetCompare, "A10", &[]interface{}{"Materials", in.Materials, us.Materials})
	f.SetSheetRow(sheetCompare, "A11", &[]interface{}{"Labor", in.Labor, us.Labor})
	f.SetCellStyle(sheetCompare, "B10", "C11", money)

	clustered := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: sheetCompare + "!$B$3", Categories: sheetCompare + "!$A$4:$A$6", Values: sheetCompare + "!$B$4:$B$6"},
			{Name: sheetCompare + "!$C$3", Categories: sheetCompare + "!$A$4:$A$6", Values: sheetCompare + "!$C$4:$C$6"},
		},
		Title:     []excelize.RichTextRun{{Text: "IN vs US - Materials / Labor / Grand Total"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
	if err := f.AddChart(sheetCompare, "E3", clustered); err != nil {
		return fmt.Errorf("report: compare chart: %w", err)
	}

	stacked := &excelize.Chart{
		Type: excelize.ColPercentStacked,
		Series: []excelize.ChartSeries{
			{Name: sheetCompare + "!$B$9", Categories: sheetCompare + "!$A$10:$A$11", Values: sheetCompare + "!$B$10:$B$11"},
			{Name: sheetCompare + "!$C$9", Categories: sheetCompare + "!$A$10:$A$11", Values: sheetCompare + "!$C$10:$C$11"},
		},
		Title:     []excelize.RichTextRun{{Text: "Materials vs Labor (%) - IN vs US"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
	if err := f.AddChart(sheetCompare, "E20", stacked); err != nil {
		return fmt.Errorf("report: distribution chart: %w", err)
	}

	f.SetColWidth(sheetCompare, "A", "A", 22)
	f.SetColWidth(sheetCompare, "B", "C", 18)
	return nil
}

// writeChartsSheet adds the pie and bar views over the Summary rows.
func writeChartsSheet(f *excelize.File, bd *pricing.Breakdown) error {
	if _, err := f.NewSheet(sheetCharts); err != nil {
		return err
	}
	title, bold, money, err := styles(f)
	if err != nil {
		return err
	}
	f.SetCellValue(sheetCharts, "A1", "Visualization - Final Estimate")
	f.SetCellStyle(sheetCharts, "A1", "A1", title)

	f.SetCellValue(sheetCharts, "A3", "Grand Total")
	f.SetCellStyle(sheetCharts, "A3", "A3", bold)
	f.SetCellValue(sheetCharts, "B3", bd.Summary.GrandTotal)
	f.SetCellStyle(sheetCharts, "B3", "B3", money)

	pie := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       "Materials vs Labor",
				Categories: sheetSummary + "!$A$5:$A$6",
				Values:     sheetSummary + "!$B$5:$B$6",
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Materials vs Labor"}},
		Dimension: excelize.ChartDimension{Width: 480, Height: 320},
	}
	if err := f.AddChart(sheetCharts, "A5", pie); err != nil {
		return fmt.Errorf("report: pie chart: %w", err)
	}

	bar := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       "Markups",
				Categories: sheetSummary + "!$A$8:$A$11",
				Values:     sheetSummary + "!$B$8:$B$11",
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Overheads / Contingency / Profit / Tax"}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
	if err := f.AddChart(sheetCharts, "J5", bar); err != nil {
		return fmt.Errorf("report: bar chart: %w", err)
	}

	f.SetColWidth(sheetCharts, "A", "A", 24)
	f.SetColWidth(sheetCharts, "B", "B", 20)
	return nil
}
