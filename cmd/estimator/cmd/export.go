package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
	"github.com/vamshi737/smartestimator/report"
)

var exportFlags struct {
	prices string
	inJSON string
	usJSON string

	outXLSX        string
	outPDF         string
	outDetailedPDF string
	outJSON        string
	outBOQCSV      string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Price the takeoffs and render the report artifacts",
	Long: `Price the takeoffs and render the report artifacts: the Excel
workbook, the summary and detailed PDFs, the bill-of-quantities CSV and
the final breakdown JSON. A missing takeoff file skips its region. The
written workbook is validated against the computed breakdown before the
command reports success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := pricing.Load(exportFlags.prices)
		if err != nil {
			return err
		}

		var india *qty.IndiaTotal
		if fileExists(exportFlags.inJSON) {
			india = &qty.IndiaTotal{}
			if err := readJSONFile(exportFlags.inJSON, india); err != nil {
				return err
			}
		}
		var usa *qty.USAQuantities
		if fileExists(exportFlags.usJSON) {
			usa = &qty.USAQuantities{}
			if err := readJSONFile(exportFlags.usJSON, usa); err != nil {
				return err
			}
		}
		if india == nil && usa == nil {
			return fmt.Errorf("no takeoff files found (%s, %s)", exportFlags.inJSON, exportFlags.usJSON)
		}

		regions := map[string]pricing.RegionSubtotal{}
		if india != nil {
			regions["india"] = pricing.RegionSubtotal{
				Materials: india.Totals.Materials,
				Labor:     india.Totals.LaborCost,
			}
		}
		if usa != nil {
			regions["usa"] = pricing.RegionSubtotal{
				Materials: usa.Totals.Materials,
				Labor:     usa.Totals.LaborCost,
			}
		}
		bd := pricing.BuildBreakdown(book.Global, regions)

		if err := writeJSONFile(exportFlags.outJSON, bd); err != nil {
			return err
		}
		if err := report.WriteWorkbook(exportFlags.outXLSX, bd, book, india, usa); err != nil {
			return err
		}
		if err := report.ValidateWorkbook(exportFlags.outXLSX, bd); err != nil {
			return err
		}
		if err := report.WriteSummaryPDF(exportFlags.outPDF, bd); err != nil {
			return err
		}
		if err := report.WriteDetailedPDF(exportFlags.outDetailedPDF, bd, time.Now()); err != nil {
			return err
		}
		if exportFlags.outBOQCSV != "" {
			rows := append(report.IndiaBOQ(india, book.IN), report.USABOQ(usa, book.US)...)
			if err := report.WriteBOQCSV(exportFlags.outBOQCSV, rows); err != nil {
				return err
			}
		}
		fmt.Printf("grand total %.2f %s, wrote %s\n",
			bd.Summary.GrandTotal, bd.Summary.Currency, exportFlags.outXLSX)
		return nil
	},
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.prices, "prices", "prices.json", "price book JSON file")
	exportCmd.Flags().StringVar(&exportFlags.inJSON, "in_json", "qty_india_total.json", "India takeoff JSON")
	exportCmd.Flags().StringVar(&exportFlags.usJSON, "us_json", "qty_usa.json", "USA takeoff JSON")
	exportCmd.Flags().StringVar(&exportFlags.outXLSX, "out_xlsx", "final_estimate.xlsx", "output workbook path")
	exportCmd.Flags().StringVar(&exportFlags.outPDF, "out_pdf", "final_estimate.pdf", "output summary PDF path")
	exportCmd.Flags().StringVar(&exportFlags.outDetailedPDF, "out_detailed_pdf", "final_estimate_detailed.pdf", "output detailed PDF path")
	exportCmd.Flags().StringVar(&exportFlags.outJSON, "out_json", "final_breakdown.json", "output breakdown JSON path")
	exportCmd.Flags().StringVar(&exportFlags.outBOQCSV, "out_boq_csv", "", "optional BOQ CSV path")
	rootCmd.AddCommand(exportCmd)
}
