package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
	"github.com/vamshi737/smartestimator/report"
	"github.com/vamshi737/smartestimator/vision"
)

var usaFlags struct {
	walls     string
	prices    string
	heightFt  float64
	spacingIn int
	studSize  string

	openingsExtSqft float64
	openingsIntSqft float64

	out    string
	outCSV string
}

var usaCmd = &cobra.Command{
	Use:   "usa",
	Short: "Compute the USA framing takeoff from wall metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		walls := &vision.WallMetrics{}
		if err := readJSONFile(usaFlags.walls, walls); err != nil {
			return err
		}
		book, err := pricing.Load(usaFlags.prices)
		if err != nil {
			return err
		}

		opts := qty.DefaultUSAOptions(usaFlags.heightFt)
		opts.SpacingIn = usaFlags.spacingIn
		opts.StudSize = usaFlags.studSize
		opts.OpeningsExtSqft = usaFlags.openingsExtSqft
		opts.OpeningsIntSqft = usaFlags.openingsIntSqft
		q, err := qty.ComputeUSA(qty.WallLengths{
			ExteriorFt: walls.SumExteriorFt,
			InteriorFt: walls.SumInteriorFt,
		}, opts, book.US)
		if err != nil {
			return err
		}

		if err := writeJSONFile(usaFlags.out, q); err != nil {
			return err
		}
		if usaFlags.outCSV != "" {
			if err := report.WriteBOQCSV(usaFlags.outCSV, report.USABOQ(q, book.US)); err != nil {
				return err
			}
		}
		fmt.Printf("materials %.2f, labor %.2f, total %.2f, wrote %s\n",
			q.Totals.Materials, q.Totals.LaborCost, q.Totals.GrandTotal, usaFlags.out)
		return nil
	},
}

func init() {
	usaCmd.Flags().StringVar(&usaFlags.walls, "walls", "metrics_walls.json", "wall metrics JSON from the geometry step")
	usaCmd.Flags().StringVar(&usaFlags.prices, "prices", "prices.json", "price book JSON file")
	usaCmd.Flags().Float64Var(&usaFlags.heightFt, "height_ft", 8, "wall height in feet")
	usaCmd.Flags().IntVar(&usaFlags.spacingIn, "spacing_in", 16, "stud spacing in inches (16 or 24)")
	usaCmd.Flags().StringVar(&usaFlags.studSize, "stud_size", "2x4", `stud size ("2x4" or "2x6")`)
	usaCmd.Flags().Float64Var(&usaFlags.openingsExtSqft, "openings_ext_sqft", 0, "exterior openings area (sqft)")
	usaCmd.Flags().Float64Var(&usaFlags.openingsIntSqft, "openings_int_sqft", 0, "interior openings area (sqft)")
	usaCmd.Flags().StringVar(&usaFlags.out, "out_json", "qty_usa.json", "output JSON path")
	usaCmd.Flags().StringVar(&usaFlags.outCSV, "out_csv", "", "optional BOQ CSV path")
	rootCmd.AddCommand(usaCmd)
}
