package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
	"github.com/vamshi737/smartestimator/report"
	"github.com/vamshi737/smartestimator/vision"
)

var indiaFlags struct {
	walls    string
	prices   string
	heightFt float64
	extThkMm float64
	intThkMm float64

	intOpeningsM2 float64
	extOpeningsM2 float64

	out    string
	outCSV string
}

var indiaCmd = &cobra.Command{
	Use:   "india",
	Short: "Compute the India masonry takeoff from wall metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		walls := &vision.WallMetrics{}
		if err := readJSONFile(indiaFlags.walls, walls); err != nil {
			return err
		}
		book, err := pricing.Load(indiaFlags.prices)
		if err != nil {
			return err
		}

		iopts := qty.DefaultIndiaOptions(indiaFlags.heightFt)
		iopts.ExtThicknessMm = indiaFlags.extThkMm
		iopts.IntThicknessMm = indiaFlags.intThkMm
		base, err := qty.ComputeIndia(qty.WallLengths{
			ExteriorFt: walls.SumExteriorFt,
			InteriorFt: walls.SumInteriorFt,
		}, iopts, book.IN)
		if err != nil {
			return err
		}

		eopts := qty.DefaultExtrasOptions()
		eopts.IntOpeningsM2 = indiaFlags.intOpeningsM2
		eopts.ExtOpeningsM2 = indiaFlags.extOpeningsM2
		total := qty.ComputeIndiaExtras(base, eopts, book.IN)

		if err := writeJSONFile(indiaFlags.out, total); err != nil {
			return err
		}
		if indiaFlags.outCSV != "" {
			if err := report.WriteBOQCSV(indiaFlags.outCSV, report.IndiaBOQ(total, book.IN)); err != nil {
				return err
			}
		}
		fmt.Printf("materials %.2f, labor %.2f, total %.2f, wrote %s\n",
			total.Totals.Materials, total.Totals.LaborCost, total.Totals.GrandTotal, indiaFlags.out)
		return nil
	},
}

func init() {
	indiaCmd.Flags().StringVar(&indiaFlags.walls, "walls", "metrics_walls.json", "wall metrics JSON from the geometry step")
	indiaCmd.Flags().StringVar(&indiaFlags.prices, "prices", "prices.json", "price book JSON file")
	indiaCmd.Flags().Float64Var(&indiaFlags.heightFt, "height", 10, "wall height in feet")
	indiaCmd.Flags().Float64Var(&indiaFlags.extThkMm, "ext_thk_mm", 230, "exterior wall thickness (mm)")
	indiaCmd.Flags().Float64Var(&indiaFlags.intThkMm, "int_thk_mm", 115, "interior wall thickness (mm)")
	indiaCmd.Flags().Float64Var(&indiaFlags.intOpeningsM2, "int_openings_m2", 0, "interior openings area (m2)")
	indiaCmd.Flags().Float64Var(&indiaFlags.extOpeningsM2, "ext_openings_m2", 0, "exterior openings area (m2)")
	indiaCmd.Flags().StringVar(&indiaFlags.out, "out_json", "qty_india_total.json", "output JSON path")
	indiaCmd.Flags().StringVar(&indiaFlags.outCSV, "out_csv", "", "optional BOQ CSV path")
	rootCmd.AddCommand(indiaCmd)
}
